package models

type List struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
