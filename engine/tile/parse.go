package tile

import (
	"errors"
	"fmt"
)

var ErrBadNotation = errors.New("非法的牌面记法")

// Parse 解析 mpsz 记法，如 "123m055p7z"，0 表示赤五
// 同种牌依次分配未用过的副本，普通 5 优先分配非赤副本
func Parse(s string) ([]Tile, error) {
	var used [KindCount]uint8 // 位图，记录已分配副本
	out := make([]Tile, 0, len(s))
	digits := make([]byte, 0, 14)

	take := func(k TileType, red bool) (Tile, error) {
		order := [4]int{0, 1, 2, 3}
		if k.IsFive() {
			if red {
				order = [4]int{0, -1, -1, -1}
			} else {
				order = [4]int{1, 2, 3, 0}
			}
		}
		for _, c := range order {
			if c < 0 {
				break
			}
			if used[k]&(1<<c) == 0 {
				used[k] |= 1 << c
				return New(k, c), nil
			}
		}
		return 0, fmt.Errorf("%w: %s 超过 4 张", ErrBadNotation, k)
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			digits = append(digits, c)
		case c == 'm' || c == 'p' || c == 's' || c == 'z':
			if len(digits) == 0 {
				return nil, fmt.Errorf("%w: %q 缺少数字", ErrBadNotation, s)
			}
			for _, d := range digits {
				n := int(d - '0')
				var k TileType
				red := false
				switch c {
				case 'z':
					if n < 1 || n > 7 {
						return nil, fmt.Errorf("%w: %dz", ErrBadNotation, n)
					}
					k = East + TileType(n-1)
				default:
					base := map[byte]TileType{'m': Man1, 'p': Pin1, 's': So1}[c]
					if n == 0 {
						n, red = 5, true
					}
					k = base + TileType(n-1)
				}
				t, err := take(k, red)
				if err != nil {
					return nil, err
				}
				out = append(out, t)
			}
			digits = digits[:0]
		case c == ' ':
		default:
			return nil, fmt.Errorf("%w: 非法字符 %q", ErrBadNotation, c)
		}
	}
	if len(digits) > 0 {
		return nil, fmt.Errorf("%w: %q 缺少花色", ErrBadNotation, s)
	}
	return out, nil
}

// MustParse 测试用
func MustParse(s string) []Tile {
	ts, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return ts
}

// MustCount 测试用，直接得到计数
func MustCount(s string) HandCount {
	return CountOf(MustParse(s))
}
