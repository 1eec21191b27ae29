package game

import (
	"fmt"

	"riichi/engine/tile"
)

// Situation 场况，点数单位 100 点
type Situation struct {
	Round        int // 局序号，东1 为 0，西4 为 11
	Dealer       int // 庄家座位(0-3)
	Honba        int // 本场数
	RiichiSticks int // 场上立直棒数量
}

// RoundWind 场风
func (s Situation) RoundWind() tile.Wind {
	return tile.Wind(s.Round / 4 % 4)
}

// SeatWind 某座位的自风
func (s Situation) SeatWind(seat int) tile.Wind {
	return tile.Wind((seat - s.Dealer + 4) % 4)
}

func (s Situation) String() string {
	return fmt.Sprintf("%s%d局 %d本场", s.RoundWind(), s.Round%4+1, s.Honba)
}
