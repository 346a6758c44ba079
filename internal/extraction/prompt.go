package extraction

// BuildPrompt returns the fixed instruction prompt sent with every score
// sheet image. The model decides the header field names; the table schema and
// the two reported totals are fixed.
func BuildPrompt() string {
	return `You are performing OCR data extraction on an exam score sheet image.

Analyze the image carefully and extract the following:

1. HEADER INFORMATION: Every labeled metadata field visible at the top of the
   sheet (exam name, subject, date, student id, center code, and so on). Use
   the field labels exactly as they appear on the document as JSON keys. Do
   not invent fields that are not visible.

2. MARKS TABLE: Every row of the marks grid, in the order printed on the
   sheet. Each row has a question number, up to three part scores (a, b, c),
   and a row total. Use empty strings for cells that are blank or struck out.

3. WRITTEN TOTAL: The grand total handwritten or printed on the sheet.

4. BUBBLE DIGITS: The total encoded in the shaded/bubbled digit boxes.

OUTPUT FORMAT:
Respond with ONLY a JSON object in the following format, with no surrounding
markdown and no commentary:

{
  "headerInfo": { "<field label>": "<value>", ... },
  "tableData": [
    { "qNo": "1", "a": "5", "b": "3", "c": "", "total": "8" }
  ],
  "writtenTotal": 80,
  "bubbleDigits": 80
}

If a value is unreadable, use an empty string rather than guessing.`
}
