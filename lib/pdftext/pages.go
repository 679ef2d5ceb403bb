package pdftext

import (
	"fmt"
	"strconv"
	"strings"
)

// page selection in the usual document tool syntax: "all", "1",
// "2-4", "1,3-5".
type PageSet struct {
	all   bool
	pages map[int]bool
}

func AllPages() PageSet {
	return PageSet{all: true}
}

func ParsePages(spec string) (PageSet, error) {
	spec = strings.TrimSpace(strings.ToLower(spec))
	if spec == "" || spec == "all" {
		return AllPages(), nil
	}

	set := PageSet{pages: map[int]bool{}}
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		lo, hi, found := strings.Cut(part, "-")
		if !found {
			hi = lo
		}

		start, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return PageSet{}, fmt.Errorf("bad page range %q: %w", part, err)
		}
		end, err := strconv.Atoi(strings.TrimSpace(hi))
		if err != nil {
			return PageSet{}, fmt.Errorf("bad page range %q: %w", part, err)
		}
		if start < 1 || end < start {
			return PageSet{}, fmt.Errorf("bad page range %q", part)
		}
		for n := start; n <= end; n++ {
			set.pages[n] = true
		}
	}
	return set, nil
}

func (s PageSet) Contains(page int) bool {
	return s.all || s.pages[page]
}
