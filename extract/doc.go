// Package extract turns a parsed document object model into layouts of
// paragraphs and tables.
//
// The object model is described by the [Source] interface family and is
// supplied by a format package (docx, htmldoc). Extraction itself does no
// I/O: every function here works only on the values it is handed and keeps
// no state between calls, so concurrent extractions need no locking.
//
// The pipeline, leaves first:
//
//   - [MergeRuns] fuses adjacent runs with identical attributes.
//   - [ResolveParagraphStyle] derives a paragraph's [model.ParagraphStyle].
//   - [DetectList] classifies list paragraphs and their level.
//   - [ExtractTable] builds a [model.Table] with row and column spans.
//   - [Walk] linearizes the body into one [model.Layout] per section.
package extract
