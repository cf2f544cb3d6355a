// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data model for the content engine:
// platforms, research results, the aggregate content bundle, progress
// events, and stage configuration.
package types

// Platform identifies a content destination.
type Platform string

const (
	PlatformBlog      Platform = "blog"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformX         Platform = "x"
	PlatformInstagram Platform = "instagram"
)

// Platforms lists every platform in generation order. The orchestrator
// attempts them strictly in this order on every run.
var Platforms = []Platform{PlatformBlog, PlatformLinkedIn, PlatformX, PlatformInstagram}

// ResearchResult holds the material gathered for a topic. A failed research
// phase is reported as an error by the researcher, never encoded inside
// these fields.
type ResearchResult struct {
	// Topic is the query subject.
	Topic string `json:"topic" yaml:"topic"`

	// Content is the combined text gathered from all fetched sources.
	Content string `json:"content" yaml:"content"`

	// Sources lists the URLs the content was gathered from, in fetch order.
	Sources []string `json:"sources" yaml:"sources"`
}

// ContentBundle is the aggregate record accumulated across one run. It is
// constructed with only Topic set, mutated field by field as phases
// complete, and treated as immutable once emitted in a terminal event.
type ContentBundle struct {
	// Topic is the user-supplied subject.
	Topic string `json:"topic" yaml:"topic"`

	// ResearchContext is the gathered research text passed to every writer.
	ResearchContext string `json:"research_context,omitempty" yaml:"research_context,omitempty"`

	// BlogPost is the generated blog article in Markdown.
	BlogPost string `json:"blog_post,omitempty" yaml:"blog_post,omitempty"`

	// LinkedInPost is the generated LinkedIn post.
	LinkedInPost string `json:"linkedin_post,omitempty" yaml:"linkedin_post,omitempty"`

	// XPost is the generated X post.
	XPost string `json:"x_post,omitempty" yaml:"x_post,omitempty"`

	// InstagramCaption is the generated Instagram caption.
	InstagramCaption string `json:"instagram_caption,omitempty" yaml:"instagram_caption,omitempty"`

	// InstagramImageIdeas suggests visuals to accompany the caption.
	// Image-idea extraction is not implemented yet; when the caption
	// succeeds this holds a fixed placeholder pair so the field's shape
	// is stable for downstream consumers.
	InstagramImageIdeas []string `json:"instagram_image_ideas,omitempty" yaml:"instagram_image_ideas,omitempty"`

	// Sources lists the research source URLs. When the caller supplied
	// URLs, that list is authoritative.
	Sources []string `json:"sources,omitempty" yaml:"sources,omitempty"`

	// Errors records every non-fatal failure during the run, in order.
	// An empty list means a fully clean run.
	Errors []string `json:"errors" yaml:"errors"`
}

// NewContentBundle returns a bundle for topic with an empty error list.
func NewContentBundle(topic string) *ContentBundle {
	return &ContentBundle{Topic: topic, Errors: []string{}}
}

// SetPlatformContent stores generated text into the field matching p.
func (b *ContentBundle) SetPlatformContent(p Platform, text string) {
	switch p {
	case PlatformBlog:
		b.BlogPost = text
	case PlatformLinkedIn:
		b.LinkedInPost = text
	case PlatformX:
		b.XPost = text
	case PlatformInstagram:
		b.InstagramCaption = text
	}
}

// PlatformContent returns the stored text for p, or "" when generation
// failed or has not run.
func (b *ContentBundle) PlatformContent(p Platform) string {
	switch p {
	case PlatformBlog:
		return b.BlogPost
	case PlatformLinkedIn:
		return b.LinkedInPost
	case PlatformX:
		return b.XPost
	case PlatformInstagram:
		return b.InstagramCaption
	}
	return ""
}

// AddError appends a non-fatal error description to the bundle.
func (b *ContentBundle) AddError(msg string) {
	b.Errors = append(b.Errors, msg)
}
