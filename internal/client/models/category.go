package models

import "encoding/json"

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

func (c *Category) UnmarshalJSON(b []byte) error {
	type alias Category
	var aux struct {
		alias
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*c = Category(aux.alias)
	if c.ID == "" {
		c.ID = aux.MongoID
	}
	return nil
}

type CategoryInput struct {
	Name        string
	Description string
	Image       *Upload
}
