package domain

import "encoding/json"

// Money fields are written with exactly two decimals ("25.50", not "25.5").
// Decoding keeps decimal's default, which accepts either form.

func (m MenuItem) MarshalJSON() ([]byte, error) {
	type plain MenuItem
	return json.Marshal(struct {
		plain
		Price string `json:"price"`
	}{plain(m), m.Price.StringFixed(2)})
}

func (e CartEntry) MarshalJSON() ([]byte, error) {
	type plain CartEntry
	return json.Marshal(struct {
		plain
		UnitPrice string `json:"unit_price"`
		Price     string `json:"price"`
	}{plain(e), e.UnitPrice.StringFixed(2), e.Price.StringFixed(2)})
}

func (o Order) MarshalJSON() ([]byte, error) {
	type plain Order
	return json.Marshal(struct {
		plain
		Total string `json:"total"`
	}{plain(o), o.Total.StringFixed(2)})
}

func (i OrderItem) MarshalJSON() ([]byte, error) {
	type plain OrderItem
	return json.Marshal(struct {
		plain
		UnitPrice string `json:"unit_price"`
		Price     string `json:"price"`
	}{plain(i), i.UnitPrice.StringFixed(2), i.Price.StringFixed(2)})
}
