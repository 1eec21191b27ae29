package tables

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"google.golang.org/protobuf/encoding/protowire"
)

var ErrCorruptTables = errors.New("和牌表数据损坏")

// 持久化格式（protobuf wire）:
//
//	message Tables { uint32 version = 1; repeated Entry win = 2; repeated uint32 tenpai = 3 [packed]; }
//	message Entry  { uint32 key = 1; repeated uint32 payloads = 2 [packed]; }
const (
	formatVersion = 1

	fieldVersion  protowire.Number = 1
	fieldWin      protowire.Number = 2
	fieldTenpai   protowire.Number = 3
	fieldKey      protowire.Number = 1
	fieldPayloads protowire.Number = 2
)

// MarshalBinary 按键升序输出，同一张表的编码结果稳定
func (t *Tables) MarshalBinary() ([]byte, error) {
	keys := make([]uint32, 0, len(t.Win))
	for k := range t.Win {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	var b []byte
	b = protowire.AppendTag(b, fieldVersion, protowire.VarintType)
	b = protowire.AppendVarint(b, formatVersion)

	for _, k := range keys {
		var entry []byte
		entry = protowire.AppendTag(entry, fieldKey, protowire.VarintType)
		entry = protowire.AppendVarint(entry, uint64(k))
		var packed []byte
		for _, p := range t.Win[k] {
			packed = protowire.AppendVarint(packed, uint64(p))
		}
		entry = protowire.AppendTag(entry, fieldPayloads, protowire.BytesType)
		entry = protowire.AppendBytes(entry, packed)

		b = protowire.AppendTag(b, fieldWin, protowire.BytesType)
		b = protowire.AppendBytes(b, entry)
	}

	tenpai := make([]uint32, 0, len(t.Tenpai))
	for k := range t.Tenpai {
		tenpai = append(tenpai, k)
	}
	sort.Slice(tenpai, func(i, j int) bool { return tenpai[i] < tenpai[j] })
	var packed []byte
	for _, k := range tenpai {
		packed = protowire.AppendVarint(packed, uint64(k))
	}
	b = protowire.AppendTag(b, fieldTenpai, protowire.BytesType)
	b = protowire.AppendBytes(b, packed)
	return b, nil
}

func (t *Tables) UnmarshalBinary(b []byte) error {
	t.Win = make(map[uint32][]Payload, 1<<15)
	t.Tenpai = make(map[uint32]struct{}, 1<<16)
	version := uint64(0)

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %v", ErrCorruptTables, protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == fieldVersion && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return fmt.Errorf("%w: %v", ErrCorruptTables, protowire.ParseError(n))
			}
			version = v
			b = b[n:]
		case num == fieldWin && typ == protowire.BytesType:
			entry, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return fmt.Errorf("%w: %v", ErrCorruptTables, protowire.ParseError(n))
			}
			if err := t.consumeEntry(entry); err != nil {
				return err
			}
			b = b[n:]
		case num == fieldTenpai && typ == protowire.BytesType:
			packed, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return fmt.Errorf("%w: %v", ErrCorruptTables, protowire.ParseError(n))
			}
			keys, err := consumePacked(packed)
			if err != nil {
				return err
			}
			for _, k := range keys {
				t.Tenpai[uint32(k)] = struct{}{}
			}
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return fmt.Errorf("%w: %v", ErrCorruptTables, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	if version != formatVersion {
		return fmt.Errorf("%w: 版本 %d", ErrCorruptTables, version)
	}
	return nil
}

func (t *Tables) consumeEntry(b []byte) error {
	var key uint32
	var payloads []Payload
	hasKey := false
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %v", ErrCorruptTables, protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == fieldKey && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return fmt.Errorf("%w: %v", ErrCorruptTables, protowire.ParseError(n))
			}
			key, hasKey = uint32(v), true
			b = b[n:]
		case num == fieldPayloads && typ == protowire.BytesType:
			packed, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return fmt.Errorf("%w: %v", ErrCorruptTables, protowire.ParseError(n))
			}
			vs, err := consumePacked(packed)
			if err != nil {
				return err
			}
			for _, v := range vs {
				payloads = append(payloads, Payload(v))
			}
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return fmt.Errorf("%w: %v", ErrCorruptTables, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	if !hasKey || len(payloads) == 0 {
		return fmt.Errorf("%w: 条目缺少键或拆解", ErrCorruptTables)
	}
	t.Win[key] = payloads
	return nil
}

func consumePacked(b []byte) ([]uint64, error) {
	var out []uint64
	for len(b) > 0 {
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return nil, fmt.Errorf("%w: %v", ErrCorruptTables, protowire.ParseError(n))
		}
		out = append(out, v)
		b = b[n:]
	}
	return out, nil
}

// Save 写入文件
func (t *Tables) Save(path string) error {
	b, err := t.MarshalBinary()
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// Load 从文件读取
func Load(path string) (*Tables, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	t := new(Tables)
	if err := t.UnmarshalBinary(b); err != nil {
		return nil, fmt.Errorf("加载和牌表 %s: %w", path, err)
	}
	return t, nil
}
