package domain

// Transformation describes the filters requested for a photo. A filter only
// contributes to the chain when UseFilter is set and its required values are present.
type Transformation struct {
	Circle CircleFilter `json:"circle"`
	Effect EffectFilter `json:"effect"`
	Resize ResizeFilter `json:"resize"`
	Text   TextFilter   `json:"text"`
	Rotate RotateFilter `json:"rotate"`
}

type CircleFilter struct {
	UseFilter bool `json:"use_filter"`
	Height    int  `json:"height"`
	Width     int  `json:"width"`
}

type EffectFilter struct {
	UseFilter  bool `json:"use_filter"`
	ArtAudrey  bool `json:"art_audrey"`
	ArtZorro   bool `json:"art_zorro"`
	Cartoonify bool `json:"cartoonify"`
	Blur       bool `json:"blur"`
}

type ResizeFilter struct {
	UseFilter bool `json:"use_filter"`
	Crop      bool `json:"crop"`
	Fill      bool `json:"fill"`
	Height    int  `json:"height"`
	Width     int  `json:"width"`
}

type TextFilter struct {
	UseFilter bool   `json:"use_filter"`
	FontSize  int    `json:"font_size"`
	Text      string `json:"text"`
}

type RotateFilter struct {
	UseFilter bool `json:"use_filter"`
	Width     int  `json:"width"`
	Degree    int  `json:"degree"`
}

// DefaultTransformation mirrors the defaults clients get when they omit a field.
func DefaultTransformation() Transformation {
	return Transformation{
		Circle: CircleFilter{Height: 400, Width: 400},
		Resize: ResizeFilter{Height: 400, Width: 400},
		Text:   TextFilter{FontSize: 70},
		Rotate: RotateFilter{Width: 400, Degree: 45},
	}
}
