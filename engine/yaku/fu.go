package yaku

// calculateFu 计算符数
func (s *shape) calculateFu() int {
	if s.kokushi {
		return 0
	}
	if s.chiitoi {
		return 25
	}
	if s.pinfu() {
		if s.ctx.Tsumo {
			return 20
		}
		return 30
	}

	fu := 20 // 副底
	switch {
	case s.ctx.Tsumo:
		fu += 2
	case s.menzen:
		fu += 10 // 门前加符
	}

	// 边张/嵌张/单骑
	switch s.wait {
	case WaitKanchan, WaitPenchan, WaitTanki:
		fu += 2
	}

	// 雀头：连风牌各算一次
	if s.pair.IsDragon() {
		fu += 2
	}
	if s.pair == s.ctx.RoundWind {
		fu += 2
	}
	if s.pair == s.ctx.SeatWind {
		fu += 2
	}

	for _, g := range s.triplets() {
		f := 2
		if g.kan {
			f = 8
		}
		if !g.open {
			f *= 2
		}
		if g.first.IsYaochu() {
			f *= 2
		}
		fu += f
	}

	// 副露平和形的荣和补到 30 符
	if fu == 20 {
		return 30
	}
	return (fu + 9) / 10 * 10
}
