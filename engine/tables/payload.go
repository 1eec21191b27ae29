package tables

// Payload 一种拆解方式的位压缩描述
//
//	bit 0-2   刻子数
//	bit 3-5   顺子数
//	bit 6-9   雀头位置
//	bit 10-25 面子位置，每个 4 bit，先刻子后顺子（顺子记首张）
//	bit 26    七对子
//	bit 27    九莲宝灯形
//	bit 28    一气通贯
//	bit 29    二杯口
//	bit 30    一杯口
//
// 位置是手牌中出现的牌种按升序排列后的下标，见 pattern.Kinds。
type Payload uint32

const (
	FlagChiitoi    Payload = 1 << 26
	FlagChuuren    Payload = 1 << 27
	FlagIttsu      Payload = 1 << 28
	FlagRyanpeikou Payload = 1 << 29
	FlagIipeikou   Payload = 1 << 30
)

func (p Payload) Triplets() int { return int(p & 0b111) }

func (p Payload) Runs() int { return int(p >> 3 & 0b111) }

func (p Payload) PairPos() int { return int(p >> 6 & 0b1111) }

// Group 第 i 个面子的位置，i < Triplets()+Runs()
func (p Payload) Group(i int) int { return int(p >> (10 + 4*uint(i)) & 0b1111) }

func (p Payload) TripletPositions() []int {
	out := make([]int, p.Triplets())
	for i := range out {
		out[i] = p.Group(i)
	}
	return out
}

func (p Payload) RunPositions() []int {
	n := p.Triplets()
	out := make([]int, p.Runs())
	for i := range out {
		out[i] = p.Group(n + i)
	}
	return out
}

func (p Payload) Chiitoi() bool { return p&FlagChiitoi != 0 }

func (p Payload) Chuuren() bool { return p&FlagChuuren != 0 }

func (p Payload) Ittsu() bool { return p&FlagIttsu != 0 }

func (p Payload) Ryanpeikou() bool { return p&FlagRyanpeikou != 0 }

func (p Payload) Iipeikou() bool { return p&FlagIipeikou != 0 }

func encodePayload(triplets, runs []int, pair int, flags Payload) Payload {
	p := Payload(len(triplets)) | Payload(len(runs))<<3 | Payload(pair)<<6
	i := 0
	for _, pos := range triplets {
		p |= Payload(pos) << (10 + 4*uint(i))
		i++
	}
	for _, pos := range runs {
		p |= Payload(pos) << (10 + 4*uint(i))
		i++
	}
	return p | flags
}
