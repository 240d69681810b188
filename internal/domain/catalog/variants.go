package catalog

import "encoding/json"

// VariantInput is the caller-supplied variant annotation. ImageCount says
// how many of the freshly uploaded URLs belong to this variant; Images
// carries URLs the variant already owned (update path only).
type VariantInput struct {
	Color      string   `json:"color"`
	ImageCount int      `json:"imageCount"`
	Images     []string `json:"images"`
}

// ParseVariantsField interprets the raw multipart "variants" field. A
// malformed value yields no variants rather than an error.
func ParseVariantsField(raw string) []VariantInput {
	if raw == "" {
		return nil
	}
	var inputs []VariantInput
	if err := json.Unmarshal([]byte(raw), &inputs); err != nil {
		return nil
	}
	return inputs
}

// assignVariantImages partitions uploaded URLs sequentially: the first
// ImageCount[0] URLs go to variant 0, the next ImageCount[1] to variant 1,
// and so on. Leftover URLs are assigned to no variant. The caller keeps the
// full URL list in the product's flat Images field regardless, so every
// image stays addressable both ways.
func assignVariantImages(uploaded []string, inputs []VariantInput) []Variant {
	variants := make([]Variant, 0, len(inputs))
	idx := 0
	for _, in := range inputs {
		images := append([]string(nil), in.Images...)
		if in.ImageCount > 0 {
			end := idx + in.ImageCount
			if end > len(uploaded) {
				end = len(uploaded)
			}
			if idx < end {
				images = append(images, uploaded[idx:end]...)
			}
			idx = end
		}
		if images == nil {
			images = []string{}
		}
		variants = append(variants, Variant{Color: in.Color, Images: images})
	}
	return variants
}
