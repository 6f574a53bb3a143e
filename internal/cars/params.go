package cars

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"carcatalog/internal/catalog"
)

// parseFilter reads the listing query parameters. Empty values count as
// absent; a value that is present but not a number is an error. Text values
// are used verbatim, whitespace included.
func parseFilter(c *gin.Context) (catalog.Filter, error) {
	f := catalog.Filter{
		Country:   optString(c, "country"),
		Segment:   optString(c, "segment"),
		Search:    optString(c, "search"),
		BodyStyle: optString(c, "bodyStyle"),
	}

	ints := []struct {
		name string
		dst  **int
	}{
		{"minEngineDisplacement", &f.MinEngineDisplacement},
		{"minEngineHorsepower", &f.MinEngineHorsepower},
		{"minMaxSpeed", &f.MinMaxSpeed},
		{"year", &f.Year},
	}
	for _, p := range ints {
		v, err := optInt(c, p.name)
		if err != nil {
			return f, err
		}
		*p.dst = v
	}

	if s := optString(c, "isFull"); s != nil {
		b, err := strconv.ParseBool(*s)
		if err != nil {
			return f, fmt.Errorf("isFull: %q is not a boolean", *s)
		}
		f.IsFull = &b
	}
	return f, nil
}

func optString(c *gin.Context, name string) *string {
	v, ok := c.GetQuery(name)
	if !ok || v == "" {
		return nil
	}
	return &v
}

func optInt(c *gin.Context, name string) (*int, error) {
	s := optString(c, name)
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(*s))
	if err != nil {
		return nil, fmt.Errorf("%s: %q is not an integer", name, *s)
	}
	return &n, nil
}
