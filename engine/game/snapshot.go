package game

import (
	"riichi/engine/agari"
	"riichi/engine/agent"
	"riichi/engine/meld"
	"riichi/engine/tile"
)

// SeatView 一个座位的可见信息；Tiles/Waits 只对本人可见
type SeatView struct {
	Seat       int               `json:"seat"`
	Wind       tile.Wind         `json:"wind"`
	Score      int               `json:"score"`
	HandSize   int               `json:"handSize"`
	River      []tile.Tile       `json:"river"`
	Discards   []tile.Tile       `json:"discards"`
	Melds      []meld.Meld       `json:"melds"`
	Riichi     agent.RiichiState `json:"riichi"`
	RiichiTile tile.Tile         `json:"riichiTile"`

	Tiles   []tile.Tile  `json:"tiles,omitempty"`
	Waits   tile.KindSet `json:"waits,omitempty"`
	Furiten bool         `json:"furiten,omitempty"`
}

// Snapshot 某个视角下的局面投影，不持有牌桌的任何可变引用
type Snapshot struct {
	GameID         string              `json:"gameId"`
	Viewer         int                 `json:"viewer"` // -1 为旁观视角
	Situation      Situation           `json:"situation"`
	Turn           int                 `json:"turn"`
	Left           int                 `json:"left"`
	DoraIndicators []tile.Tile         `json:"doraIndicators"`
	Visible        [tile.KindCount]int `json:"visible"`
	Seats          [4]SeatView         `json:"seats"`

	// 以下只在本人视角下有意义
	Shanten     int          `json:"shanten"`
	Ukeire      int          `json:"ukeire"`
	UkeireKinds tile.KindSet `json:"ukeireKinds"`
}

// Snapshot 当前局面，viewer 为 -1 时不含任何人的手牌
func (t *Table) Snapshot(viewer int) *Snapshot {
	s := &Snapshot{
		GameID:    t.id,
		Viewer:    viewer,
		Situation: t.sit,
		Turn:      t.turn,
		Left:      t.wall.Left(),
		Visible:   t.visible,
		Shanten:   -2,
		Ukeire:    -1,
	}
	if t.agents[0] == nil {
		return s
	}
	s.DoraIndicators = t.wall.DoraIndicators()
	for i, a := range t.agents {
		v := SeatView{
			Seat:       a.Seat,
			Wind:       a.Wind,
			Score:      a.Score,
			HandSize:   len(a.Tiles()),
			River:      a.River(),
			Discards:   a.Discards(),
			Melds:      a.Melds(),
			Riichi:     a.Riichi(),
			RiichiTile: a.RiichiTile(),
		}
		if i == viewer {
			v.Tiles = a.Tiles()
			v.Waits = a.Waits()
			v.Furiten = a.Furiten()
		}
		s.Seats[i] = v
	}
	if viewer >= 0 && viewer < 4 {
		a := t.agents[viewer]
		h := a.Hand()
		fixed := len(a.Melds())
		s.Shanten = agari.Shanten(h, fixed)
		if h.Total()%3 == 1 {
			s.UkeireKinds, s.Ukeire = agari.Ukeire(h, fixed, &s.Visible)
		}
	}
	return s
}
