package atoms

import "fmt"

var breakpoints = []string{"mobile", "tablet", "desktop"}

func class(prop, value string) string {
	return fmt.Sprintf("sprinkles_%s_%s", prop, value)
}

func condClass(prop, value, cond string) string {
	return fmt.Sprintf("sprinkles_%s_%s_%s", prop, value, cond)
}

func plain(name string, values ...string) Property {
	p := Property{Name: name}
	for _, v := range values {
		p.Values = append(p.Values, PropertyValue{Value: v, DefaultClass: class(name, v)})
	}
	return p
}

func conditional(c *Conditions, name string, values ...string) Property {
	p := Property{Name: name}
	for _, v := range values {
		pv := PropertyValue{Value: v, Conditions: map[string]string{}}
		for _, cond := range c.Names {
			pv.Conditions[cond] = condClass(name, v, cond)
		}
		if c.Default != "" {
			pv.DefaultClass = pv.Conditions[c.Default]
		}
		p.Values = append(p.Values, pv)
	}
	return p
}

func responsiveConditions() *Conditions {
	return &Conditions{Names: breakpoints, Default: "mobile", ResponsiveArray: breakpoints}
}

var spaces = []string{"small", "medium", "large"}

func atomicStyles() Config {
	return Config{Properties: []Property{
		plain("top", "0", "1"),
		plain("color", "gray-500", "red-500", "green-300"),
	}}
}

func atomicWithShorthandStyles() Config {
	return Config{
		Properties: []Property{
			plain("color", "gray-500", "red-500", "green-300"),
			plain("paddingLeft", spaces...),
			plain("paddingRight", spaces...),
		},
		Shorthands: []Shorthand{
			{Name: "paddingX", Targets: []string{"paddingLeft", "paddingRight"}},
			{Name: "anotherPaddingX", Targets: []string{"paddingLeft", "paddingRight"}},
		},
	}
}

func atomicWithPaddingShorthandStyles() Config {
	return Config{
		Properties: []Property{
			plain("paddingTop", spaces...),
			plain("paddingBottom", spaces...),
			plain("paddingLeft", spaces...),
			plain("paddingRight", spaces...),
		},
		Shorthands: []Shorthand{
			{Name: "padding", Targets: []string{"paddingTop", "paddingBottom", "paddingLeft", "paddingRight"}},
			{Name: "paddingX", Targets: []string{"paddingLeft", "paddingRight"}},
			{Name: "paddingY", Targets: []string{"paddingBottom", "paddingTop"}},
		},
	}
}

func conditionalAtomicStyles() Config {
	c := responsiveConditions()
	return Config{
		Conditions: c,
		Properties: []Property{
			conditional(c, "display", "block", "flex", "none"),
			conditional(c, "paddingTop", spaces...),
			conditional(c, "paddingBottom", spaces...),
			conditional(c, "opacity", "0", "1"),
		},
		Shorthands: []Shorthand{
			{Name: "paddingY", Targets: []string{"paddingBottom", "paddingTop"}},
		},
	}
}

func conditionalStylesWithoutDefaultCondition() Config {
	c := &Conditions{Names: []string{"active"}}
	return Config{
		Conditions: c,
		Properties: []Property{conditional(c, "transform", "shrink")},
	}
}

func conditionalStylesWithoutResponsiveArray() Config {
	c := &Conditions{Names: breakpoints, Default: "mobile"}
	return Config{
		Conditions: c,
		Properties: []Property{conditional(c, "marginTop", spaces...)},
	}
}
