package yaku

// Yaku 役种（和牌方式）
type Yaku int

// 役种常量定义
const (
	// 基本役
	YakuRiichi       Yaku = iota // 立直
	YakuDoubleRiichi             // 两立直
	YakuIppatsu                  // 一发
	YakuTsumo                    // 门前清自摸和
	YakuPinfu                    // 平和：4顺子+非役牌雀头，两面听牌
	YakuIipeikou                 // 一杯口
	YakuRyanpeikou               // 二杯口
	YakuTanyao                   // 断幺九

	// 役牌系
	YakuHaku   // 白
	YakuHatsu  // 发
	YakuChun   // 中
	YakuBakaze // 场风
	YakuJikaze // 自风

	// 偶然役
	YakuRinshan // 岭上开花
	YakuChankan // 抢杠
	YakuHaitei  // 海底摸月
	YakuHoutei  // 河底捞鱼

	// 顺子系
	YakuSanshoku // 三色同顺
	YakuIttsu    // 一气通贯

	// 带幺系
	YakuChanta  // 混全带幺九
	YakuJunchan // 纯全带幺九

	// 刻子系
	YakuToitoi        // 对对和
	YakuSanankou      // 三暗刻
	YakuSankantsu     // 三杠子
	YakuSanshokuDokou // 三色同刻
	YakuShousangen    // 小三元
	YakuHonroutou     // 混老头

	// 染手
	YakuHonitsu  // 混一色
	YakuChinitsu // 清一色

	YakuChiitoi // 七对子

	// 宝牌，不算役
	YakuDora    // 宝牌
	YakuUraDora // 里宝牌
	YakuAkaDora // 赤宝牌

	// 役满役种
	YakuKokushi       // 国士无双
	YakuKokushi13     // 国士十三面（双倍）
	YakuSuuankou      // 四暗刻
	YakuSuuankouTanki // 四暗刻单骑（双倍）
	YakuDaisangen     // 大三元
	YakuShousuushi    // 小四喜
	YakuDaisuushi     // 大四喜（双倍）
	YakuTsuuiisou     // 字一色
	YakuChinroutou    // 清老头
	YakuRyuuiisou     // 绿一色
	YakuChuuren       // 九莲宝灯
	YakuJunseiChuuren // 纯正九莲宝灯（双倍）
	YakuSuukantsu     // 四杠子
	YakuTenhou        // 天和
	YakuChiihou       // 地和
	yakuCount
)

var yakuNames = [yakuCount]string{
	YakuRiichi:        "立直",
	YakuDoubleRiichi:  "两立直",
	YakuIppatsu:       "一发",
	YakuTsumo:         "门清自摸",
	YakuPinfu:         "平和",
	YakuIipeikou:      "一杯口",
	YakuRyanpeikou:    "两杯口",
	YakuTanyao:        "断幺",
	YakuHaku:          "役牌 白",
	YakuHatsu:         "役牌 发",
	YakuChun:          "役牌 中",
	YakuBakaze:        "场风",
	YakuJikaze:        "门风",
	YakuRinshan:       "岭上开花",
	YakuChankan:       "抢杠",
	YakuHaitei:        "海底摸月",
	YakuHoutei:        "河底捞鱼",
	YakuSanshoku:      "三色同顺",
	YakuIttsu:         "一气通贯",
	YakuChanta:        "混全带幺九",
	YakuJunchan:       "纯全带幺九",
	YakuToitoi:        "对对和",
	YakuSanankou:      "三暗刻",
	YakuSankantsu:     "三杠子",
	YakuSanshokuDokou: "三色同刻",
	YakuShousangen:    "小三元",
	YakuHonroutou:     "混老头",
	YakuHonitsu:       "混一色",
	YakuChinitsu:      "清一色",
	YakuChiitoi:       "七对子",
	YakuDora:          "宝牌",
	YakuUraDora:       "里宝牌",
	YakuAkaDora:       "赤宝牌",
	YakuKokushi:       "国士无双",
	YakuKokushi13:     "国士十三面",
	YakuSuuankou:      "四暗刻",
	YakuSuuankouTanki: "四暗刻单骑",
	YakuDaisangen:     "大三元",
	YakuShousuushi:    "小四喜",
	YakuDaisuushi:     "大四喜",
	YakuTsuuiisou:     "字一色",
	YakuChinroutou:    "清老头",
	YakuRyuuiisou:     "绿一色",
	YakuChuuren:       "九莲宝灯",
	YakuJunseiChuuren: "纯正九莲宝灯",
	YakuSuukantsu:     "四杠子",
	YakuTenhou:        "天和",
	YakuChiihou:       "地和",
}

func (y Yaku) String() string {
	if y < 0 || y >= yakuCount {
		return "未知役"
	}
	return yakuNames[y]
}

// IsYakuman 役满役种
func (y Yaku) IsYakuman() bool {
	return y >= YakuKokushi && y < yakuCount
}

// IsDora 宝牌不计入役的判定
func (y Yaku) IsDora() bool {
	return y == YakuDora || y == YakuUraDora || y == YakuAkaDora
}
