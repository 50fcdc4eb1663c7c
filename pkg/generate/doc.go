// Package generate produces randomized answers that respect each question
// type: one string for text, one choice for radio, grid rows and scales, and a
// non-empty subset for checkboxes. The "other" option counts as one more
// outcome among the choices. Output is reproducible under WithSeed.
package generate
