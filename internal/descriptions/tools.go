package descriptions

// Comprehensive tool descriptions with practical examples and use cases

const (
	// Extraction Tools
	DocExtractFileDescription = `Extract classified document elements: tables, text sections, titles, and list items.

**When to use:** Need structured content from a document for analysis, reporting, or downstream processing.

**Why it's useful:** Separates tabular data from prose automatically, reconstructs table rows and columns, and normalizes whitespace so the output is ready for analysis.

**Examples:**
• Analyze a study: "Extract tables and text from water-quality-report.pdf"
• Pull structured data: "Get the pricing table out of catalog.pdf as rows and columns"
• Prepare content: "Extract sections from methods.txt for summarization"

**Common workflows:**
1. Research & Analysis: Extract elements → Review tables → Generate summaries
2. Data Pipeline: Extract document → Feed tables to analysis → Store results
3. Meta-study Preparation: Extract each document → Build corpus → Run clustering

**Best practices:** Validate the file first with doc_validate_file, elements that fail to parse are skipped rather than failing the whole extraction.`

	DocExtractToExcelDescription = `Extract a document and export the results to a multi-sheet Excel workbook.

**When to use:** Need extracted tables and text in spreadsheet form for review, sharing, or further analysis.

**Why it's useful:** Produces one workbook per document with a sheet per table, a Text_Sections sheet listing every prose element, and a Metadata sheet, with no manual copy-paste.

**Examples:**
• Report delivery: "Export quarterly-report.pdf to report.xlsx for the finance team"
• Table review: "Get every table from survey-results.pdf into separate sheets"
• Archive: "Convert legacy-study.pdf to a structured workbook"

**Common workflows:**
1. Review: Extract to Excel → Open workbook → Verify tables sheet by sheet
2. Delivery: Extract to Excel → Share workbook → Collect feedback
3. Batch Export: Search directory → Extract each file to Excel → Collect workbooks

**Best practices:** Long text sections are truncated to 500 characters in the workbook; use doc_extract_file when full text is required.`

	DocValidateFileDescription = `Verify a document file is readable and within limits before processing.

**When to use:** Before attempting extraction, especially in automated workflows or when handling unknown files.

**Why it's useful:** Catches missing, empty, oversized, or unsupported files early with a clear message instead of a mid-extraction failure.

**Examples:**
• Batch safety: "Validate all files in /studies/ before bulk extraction"
• Upload check: "Confirm uploaded-report.pdf is processable"
• Quality control: "Verify exported.txt is non-empty and within the size limit"

**Common workflows:**
1. Automated Processing: Validate → Extract if valid → Handle rejects gracefully
2. Pre-flight Check: Validate → Report issues → Fix or skip bad files

**Best practices:** Always run this first in automated workflows; invalid files return a result with a message, not an error.`

	// Search and Discovery Tools
	DocSearchDirectoryDescription = `Discover document files across directories with optional name filtering.

**When to use:** Need to find documents by name patterns, explore unknown directories, or build the input list for a meta-study.

**Why it's useful:** Walks the tree recursively, skips unreadable and oversized files, and matches names case-insensitively.

**Examples:**
• Find studies: "Search /documents/ for files containing 'trial'"
• Inventory: "List every document under /archive/"
• Corpus building: "Find all text files in /reports/ for clustering"

**Common workflows:**
1. Targeted Processing: Search for patterns → Extract matches → Generate reports
2. Meta-study Input: Search directory → Feed paths to doc_meta_study
3. Batch Operations: Find files → Validate each → Process in sequence

**Best practices:** Leave the query empty to list everything; combine with doc_validate_file before heavy processing.`

	// Analysis Tools
	DocMetaStudyDescription = `Cluster a set of documents by content similarity and report the defining terms of each group.

**When to use:** Have multiple related documents and want to discover which ones discuss the same topics.

**Why it's useful:** Builds summaries per document, vectorizes them with TF-IDF, groups them with k-means, and reports the top terms per cluster: a content map of the corpus in one call.

**Examples:**
• Literature grouping: "Cluster the 20 studies in /papers/ into 3 topic groups"
• Duplicate hunting: "Find which reports in /archive/ cover the same subject"
• Corpus overview: "Summarize what themes the documents in /submissions/ fall into"

**Common workflows:**
1. Corpus Analysis: Search directory → Meta-study → Review clusters and top terms
2. Triage: Cluster incoming documents → Route each group to the right reviewer
3. Deduplication: Cluster → Inspect same-cluster files → Merge or discard

**Best practices:** Results are deterministic for a fixed seed; an empty corpus yields an empty result rather than an error.`

	// Utility Tools
	DocServerInfoDescription = `Get real-time server status, available tools, and system capabilities.

**When to use:** Starting work with the server, troubleshooting issues, or checking available functionality.

**Why it's useful:** Provides the configured document directory, size limits, clustering defaults, and the full tool list for informed decision-making.

**Examples:**
• System check: "Verify the server is ready before batch processing"
• Troubleshooting: "Check server info to diagnose why files aren't being found"
• Capability discovery: "See all available tools and their descriptions"

**Common workflows:**
1. Session Startup: Check server info → Verify capabilities → Plan processing approach
2. Debugging: Review server status → Check directory paths → Verify tool availability

**Best practices:** Run at the start of sessions to confirm the document directory and limits.`
)

// ToolDescriptions maps tool names to their comprehensive descriptions
var ToolDescriptions = map[string]string{
	"doc_extract_file":     DocExtractFileDescription,
	"doc_extract_to_excel": DocExtractToExcelDescription,
	"doc_validate_file":    DocValidateFileDescription,
	"doc_search_directory": DocSearchDirectoryDescription,
	"doc_meta_study":       DocMetaStudyDescription,
	"doc_server_info":      DocServerInfoDescription,
}

// GetToolDescription returns the comprehensive description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns a list of all available tool names
func GetAllToolNames() []string {
	var names []string
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	return names
}
