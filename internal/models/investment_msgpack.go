package models

import (
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

var (
	_ msgpack.CustomEncoder = Investment{}
	_ msgpack.CustomDecoder = (*Investment)(nil)
)

// EncodeMsgpack writes the investment as id, name, kind, asset, created_at.
func (i Investment) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeMulti(i.ID, i.Name, string(i.Kind()), i.Asset, i.CreatedAt)
}

func (i *Investment) DecodeMsgpack(dec *msgpack.Decoder) error {
	var (
		id, name, kind string
		createdAt      time.Time
	)
	if err := dec.DecodeMulti(&id, &name, &kind); err != nil {
		return err
	}
	asset, err := DecodeAsset(InvestmentKind(kind), dec.Decode)
	if err != nil {
		return err
	}
	if err := dec.Decode(&createdAt); err != nil {
		return err
	}
	*i = Investment{ID: id, Name: name, Asset: asset, CreatedAt: createdAt}
	return nil
}
