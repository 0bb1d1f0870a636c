package ast

// Kind tags a Node with the construct it represents.
type Kind uint8

const (
	KindDocument Kind = iota
	KindHeader
	KindBold
	KindItalic
	KindLink
	KindReferenceLink
	KindReferenceDefinition
	KindQuote
	KindQuoteLine
	KindCodeBlock
	KindInlineCode
	KindHorizontalSeparator
	KindImage
	KindList
	KindListElement
	KindParagraph
	KindSoftBreak
	KindVerticalSpace
	KindText
	KindEndMarker
	KindComment

	// Operand kinds only appear as children of the constructs above.
	KindRichText
	KindLinkText
	KindURL
	KindSlug
	KindCode
	KindCodeLanguage
	KindCodeLine
	KindMetadata
	KindMetadataEntry
	KindMetadataKey
	KindMetadataValue

	kindCount
)

var kindNames = [kindCount]string{
	KindDocument:            "document",
	KindHeader:              "header",
	KindBold:                "bold",
	KindItalic:              "italic",
	KindLink:                "link",
	KindReferenceLink:       "reference-link",
	KindReferenceDefinition: "reference-definition",
	KindQuote:               "quote",
	KindQuoteLine:           "quote-line",
	KindCodeBlock:           "code-block",
	KindInlineCode:          "inline-code",
	KindHorizontalSeparator: "horizontal-separator",
	KindImage:               "image",
	KindList:                "list",
	KindListElement:         "list-element",
	KindParagraph:           "paragraph",
	KindSoftBreak:           "paragraph-soft-break",
	KindVerticalSpace:       "vertical-space",
	KindText:                "text",
	KindEndMarker:           "end-marker",
	KindComment:             "comment",
	KindRichText:            "rich-text",
	KindLinkText:            "link-text",
	KindURL:                 "url",
	KindSlug:                "slug",
	KindCode:                "code",
	KindCodeLanguage:        "code-language",
	KindCodeLine:            "code-line",
	KindMetadata:            "metadata",
	KindMetadataEntry:       "metadata-entry",
	KindMetadataKey:         "metadata-key",
	KindMetadataValue:       "metadata-value",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "unknown"
}

// Valid reports whether k belongs to the known kind set.
func (k Kind) Valid() bool {
	return k < kindCount
}

// IsRawTextLeaf reports whether nodes of this kind carry literal text that goes
// straight to the text hook without structural handling.
func (k Kind) IsRawTextLeaf() bool {
	switch k {
	case KindText, KindLinkText, KindCode, KindCodeLine:
		return true
	default:
		return false
	}
}

// IsInline reports whether a pending soft space is emitted in front of the
// construct.
func (k Kind) IsInline() bool {
	switch k {
	case KindText, KindLinkText, KindInlineCode, KindImage, KindBold, KindItalic, KindLink, KindReferenceLink:
		return true
	default:
		return false
	}
}

// RequiresBlockWrapping reports whether the rendered construct is surrounded by
// a leading and a trailing newline.
func (k Kind) RequiresBlockWrapping() bool {
	switch k {
	case KindHeader, KindCodeBlock, KindComment, KindHorizontalSeparator, KindList:
		return true
	default:
		return false
	}
}
