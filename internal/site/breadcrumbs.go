package site

// maxAncestors bounds the parent walk in ReverseAncestry.
const maxAncestors = 100

// FilterBreadcrumbs keeps pages up to, not including, the first page
// marked skip_breadcrumbs.
func FilterBreadcrumbs(pages []*Page) []*Page {
	combined := []*Page{}
	for _, page := range pages {
		if page.SkipBreadcrumbs() {
			break
		}
		combined = append(combined, page)
	}
	return combined
}

// ReverseAncestry returns page and its ancestors, root first. The walk
// stops after 100 pages. A nil page has no ancestry.
func ReverseAncestry(page *Page) []*Page {
	if page == nil {
		return []*Page{}
	}

	chain := []*Page{page}
	for p := page.Parent(); p != nil && len(chain) < maxAncestors; p = p.Parent() {
		chain = append(chain, p)
	}

	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}
