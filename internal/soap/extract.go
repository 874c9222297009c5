package soap

import (
	"strings"

	"github.com/beevik/etree"

	dErrors "github.com/tanchhohang/airlines-api/pkg/domain-errors"
)

// ReturnTag is the local name of the result element in every backend
// response envelope.
const ReturnTag = "return"

// ExtractReturn parses a response envelope and locates the first descendant
// element with the given local name, ignoring namespace prefixes.
//
// Most backend methods return their payload as a string inside that element
// that is itself XML, raw or CDATA-wrapped. When the trimmed text parses as a
// fragment, the fragment root from a second parse is returned; otherwise the
// element itself is returned so scalar payloads (e.g. the PNR maintenance
// URL) stay reachable via Text().
//
// A nil element with a nil error means the result element is absent; callers
// distinguish "no data" from "malformed data".
func ExtractReturn(envelope, localName string) (*etree.Element, error) {
	if localName == "" {
		localName = ReturnTag
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(envelope); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeParse, "malformed response envelope", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, dErrors.New(dErrors.CodeParse, "empty response document")
	}

	elem := FindLocal(root, localName)
	if elem == nil {
		return nil, nil
	}

	payload := strings.TrimSpace(elem.Text())
	if !strings.HasPrefix(payload, "<") {
		return elem, nil
	}

	inner := etree.NewDocument()
	if err := inner.ReadFromString(payload); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeParse, "malformed result payload", err)
	}
	innerRoot := inner.Root()
	if innerRoot == nil {
		return nil, dErrors.New(dErrors.CodeParse, "empty result payload")
	}
	return innerRoot, nil
}

// FindLocal returns the first descendant of elem (or elem itself) whose tag
// matches localName regardless of namespace prefix. Document order.
func FindLocal(elem *etree.Element, localName string) *etree.Element {
	if elem == nil {
		return nil
	}
	if elem.Tag == localName {
		return elem
	}
	for _, child := range elem.ChildElements() {
		if found := FindLocal(child, localName); found != nil {
			return found
		}
	}
	return nil
}

// ChildText returns the trimmed text of the first descendant with the given
// local name, and whether it was found.
func ChildText(elem *etree.Element, localName string) (string, bool) {
	if elem == nil {
		return "", false
	}
	for _, child := range elem.ChildElements() {
		if child.Tag == localName {
			return strings.TrimSpace(child.Text()), true
		}
	}
	for _, child := range elem.ChildElements() {
		if text, ok := ChildText(child, localName); ok {
			return text, true
		}
	}
	return "", false
}
