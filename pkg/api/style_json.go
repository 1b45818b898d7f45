package api

import "encoding/json"

func (s StyleSettings) MarshalJSON() ([]byte, error) {
	return json.Marshal(styleJSON{
		AspectRatio: s.AspectRatio().Key,
		FontSizePx:  s.FontSizePx(),
		LineSpacing: s.LineSpacing(),
	})
}

// UnmarshalJSON applies the decoded values through the clamping setters.
func (s *StyleSettings) UnmarshalJSON(b []byte) error {
	var in styleJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	*s = DefaultStyle()
	if in.AspectRatio != "" {
		s.SetAspectRatio(in.AspectRatio)
	}
	if in.FontSizePx != 0 {
		s.SetFontSize(in.FontSizePx)
	}
	if in.LineSpacing != 0 {
		s.SetLineSpacing(in.LineSpacing)
	}
	return nil
}
