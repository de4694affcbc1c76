package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/timmy/pixgallery/internal/domain"
)

// Stable selectors of the elements a Page is built from.
const (
	SelectorGallery  = ".gallery"
	SelectorLoadMore = ".load-more"
	SelectorLoading  = ".loading"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))

// Templates returns the parsed HTML templates (index page and gallery cards).
func Templates() *template.Template {
	return templates
}

// Element is one addressable node of a Page.
type Element struct {
	Selector  string
	InnerHTML string
	Display   string // inline style display value, "" when unset
}

// Page is an in-memory document holding the gallery container, the
// load-more control and the loading indicator. It is not safe for
// concurrent use; callers serialize access per session.
type Page struct {
	elements map[string]*Element
	notices  []string
}

var _ View = (*Page)(nil)

// Snapshot is the serializable state of a Page.
type Snapshot struct {
	GalleryHTML string   `json:"gallery_html"`
	LoadMore    string   `json:"load_more"`
	Loading     string   `json:"loading"`
	Notices     []string `json:"notices,omitempty"`
}

// NewPage creates a page with an empty gallery and both controls hidden.
func NewPage() *Page {
	return &Page{
		elements: map[string]*Element{
			SelectorGallery:  {Selector: SelectorGallery},
			SelectorLoadMore: {Selector: SelectorLoadMore, Display: DisplayNone},
			SelectorLoading:  {Selector: SelectorLoading, Display: DisplayNone},
		},
	}
}

// Query returns the element matching selector, or nil.
func (p *Page) Query(selector string) *Element {
	return p.elements[selector]
}

// Remove detaches the element matching selector from the page.
func (p *Page) Remove(selector string) {
	delete(p.elements, selector)
}

// mustQuery panics when the element is missing: every mutation requires
// the page to carry the full set of elements.
func (p *Page) mustQuery(selector string) *Element {
	el, ok := p.elements[selector]
	if !ok {
		panic(fmt.Sprintf("view: element %q not found", selector))
	}
	return el
}

func (p *Page) ClearGallery() {
	p.mustQuery(SelectorGallery).InnerHTML = ""
}

// AppendImages renders one card per hit at the end of the gallery.
func (p *Page) AppendImages(hits []domain.ImageHit) {
	gallery := p.mustQuery(SelectorGallery)
	if len(hits) == 0 {
		return
	}
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "cards.html", hits); err != nil {
		// the template only reads string and int fields of ImageHit
		panic(fmt.Sprintf("view: render cards: %v", err))
	}
	gallery.InnerHTML += strings.TrimSpace(buf.String())
}

func (p *Page) ShowLoadingIndicator() {
	p.mustQuery(SelectorLoading).Display = DisplayBlock
}

func (p *Page) HideLoadingIndicator() {
	p.mustQuery(SelectorLoading).Display = DisplayNone
}

func (p *Page) ToggleLoadMoreButton(visible bool) {
	p.mustQuery(SelectorLoadMore).Display = display(visible)
}

func (p *Page) ShowMessage(msg string) {
	p.notices = append(p.notices, msg)
}

// Snapshot returns the current state and drains pending notices.
func (p *Page) Snapshot() Snapshot {
	s := Snapshot{
		GalleryHTML: p.mustQuery(SelectorGallery).InnerHTML,
		LoadMore:    p.mustQuery(SelectorLoadMore).Display,
		Loading:     p.mustQuery(SelectorLoading).Display,
		Notices:     p.notices,
	}
	p.notices = nil
	return s
}
