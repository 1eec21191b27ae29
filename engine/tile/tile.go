package tile

import "fmt"

// TileType 牌种 0-33，赤宝牌与普通牌同种
type TileType int

const (
	// 万子 (0-8)
	Man1 TileType = iota
	Man2
	Man3
	Man4
	Man5
	Man6
	Man7
	Man8
	Man9

	// 筒子 (9-17)
	Pin1
	Pin2
	Pin3
	Pin4
	Pin5
	Pin6
	Pin7
	Pin8
	Pin9

	// 索子 (18-26)
	So1
	So2
	So3
	So4
	So5
	So6
	So7
	So8
	So9

	// 字牌 (27-33)
	East
	South
	West
	North
	White
	Green
	Red
)

const (
	KindCount = 34
	TileLimit = 136
)

// 赤宝牌: 每种花色 5 的第 0 张
const (
	RedMan5 Tile = 16
	RedPin5 Tile = 52
	RedSo5  Tile = 88
)

// TerminalHonors 国士无双的 13 种幺九牌
var TerminalHonors = [13]TileType{Man1, Man9, Pin1, Pin9, So1, So9, East, South, West, North, White, Green, Red}

func (t TileType) Valid() bool { return t >= Man1 && t <= Red }

func (t TileType) IsNumbered() bool {
	return t >= Man1 && t <= So9
}

func (t TileType) IsHonor() bool {
	return t >= East && t <= Red
}

func (t TileType) IsWind() bool { return t >= East && t <= North }

func (t TileType) IsDragon() bool { return t >= White && t <= Red }

func (t TileType) IsFive() bool {
	return t == Man5 || t == Pin5 || t == So5
}

// IsTerminal 数牌 1 和 9
func (t TileType) IsTerminal() bool {
	return t.IsNumbered() && (t%9 == 0 || t%9 == 8)
}

// IsYaochu 幺九牌（1、9、字牌）
func (t TileType) IsYaochu() bool {
	return t.IsHonor() || t.IsTerminal()
}

// Suit 0 万 1 筒 2 索，字牌为 3
func (t TileType) Suit() int {
	return int(t) / 9
}

// Rank 数牌 1-9，字牌返回 0
func (t TileType) Rank() int {
	if !t.IsNumbered() {
		return 0
	}
	return int(t)%9 + 1
}

// DoraOf 指示牌对应的宝牌
func DoraOf(indicator TileType) TileType {
	switch {
	case indicator.IsNumbered() && indicator%9 == 8:
		return indicator - 8
	case indicator == North:
		return East
	case indicator == Red:
		return White
	default:
		return indicator + 1
	}
}

var suitLetters = [4]byte{'m', 'p', 's', 'z'}

func (t TileType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("TileType(%d)", int(t))
	}
	if t.IsHonor() {
		return fmt.Sprintf("%dz", int(t-East)+1)
	}
	return fmt.Sprintf("%d%c", t.Rank(), suitLetters[t.Suit()])
}

// Tile 实体牌 0-135，牌种为 id/4
type Tile int

// NoTile 空位，如尚未摸牌
const NoTile Tile = -1

func New(t TileType, copyIndex int) Tile {
	return Tile(int(t)*4 + copyIndex)
}

func (t Tile) Valid() bool { return t >= 0 && t < TileLimit }

func (t Tile) Type() TileType { return TileType(t / 4) }

func (t Tile) Copy() int { return int(t % 4) }

// IsRed 是否为赤宝牌
func (t Tile) IsRed() bool {
	return t == RedMan5 || t == RedPin5 || t == RedSo5
}

// String 赤五记为 0m/0p/0s
func (t Tile) String() string {
	if t.IsRed() {
		return fmt.Sprintf("0%c", suitLetters[t.Type().Suit()])
	}
	return t.Type().String()
}

type Wind int

const (
	WindEast  Wind = iota // 东风
	WindSouth             // 南风
	WindWest              // 西风
	WindNorth             // 北风
)

func (w Wind) String() string {
	switch w {
	case WindEast:
		return "东"
	case WindSouth:
		return "南"
	case WindWest:
		return "西"
	case WindNorth:
		return "北"
	default:
		return "未知"
	}
}

func (w Wind) Next() Wind {
	return (w + 1) % 4
}

// Type 风对应的字牌
func (w Wind) Type() TileType {
	return East + TileType(w%4)
}
