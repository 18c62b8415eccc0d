// Package feedbackcards renders tabular feedback records as social-media-ready
// PNG cards: a rounded white card with a circular letter avatar, the author's
// name, and the wrapped feedback body.
//
// Input tables need no fixed schema. Columns are detected heuristically: the
// textual column with the longest average content becomes the feedback body,
// and a short textual column becomes the author name. Arabic text is reshaped
// into contextual presentation forms, reordered into visual order, and the
// whole card layout mirrors horizontally for right-to-left records.
//
// See the Version variable for the current library version.
package feedbackcards
