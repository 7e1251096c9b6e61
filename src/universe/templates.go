package universe

//names of the built-in templates
const (
	TemplateSample  = "sample"
	TemplateBlinker = "blinker"
	TemplateGlider  = "glider"
	TemplateBlock   = "block"
)

func builtinTemplates() []Template {
	return []Template{
		{TemplateSample, "the test sample with 3 stable patterns", [][]int{
			{1, 1}, {1, 2},
			{2, 1}, {2, 2},
			{3, 3},
			{4, 2},
			{4, 3},
			{5, 3},
		}},
		{TemplateBlinker, "period 2 oscillator", [][]int{{1, 2}, {2, 2}, {3, 2}}},
		{TemplateGlider, "the glider moving to the bottom right corner", [][]int{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}}},
		{TemplateBlock, "still life", [][]int{{1, 1}, {2, 1}, {1, 2}, {2, 2}}},
	}
}
