package mcpserver

// Tool descriptions with interpretation guidance for LLMs.
// Each description explains what the tool does, when to use it,
// how to interpret results, and key thresholds.

func describeAnalyze() string {
	return `Runs the full analysis: lines of code, cyclomatic complexity and token-based clone detection.

USE WHEN:
- Getting a first overview of an unfamiliar codebase
- Preparing a code review or refactoring plan
- Checking a change against complexity limits before merging

INTERPRETING RESULTS:
- file_complexity is 1 plus every decision point in the file
- Functions above warning_threshold (default 10) deserve attention
- Functions above error_threshold (default 20) are strong refactoring candidates
- Each clone group lists locations whose significant tokens are identical, identifiers included
- high_complexity_files counts files above the warning threshold

METRICS RETURNED:
- files: path, language, loc (physical, logical, comments, blank), cyclomatic (file_complexity, functions)
- clones: id, length in tokens, locations with start and end lines
- summary: totals, average and maximum complexity, clone group count
- errors: files that could not be read`
}

func describeComplexity() string {
	return `Measures McCabe cyclomatic complexity per file and per detected function.

USE WHEN:
- Identifying functions that are hard to test or maintain
- Finding refactoring candidates before code reviews
- Enforcing a complexity budget

INTERPRETING RESULTS:
- 1-10: simple, low risk
- 11-20: moderate, consider splitting
- 21-50: high risk
- Above 50: untestable in practice
- Function boundaries are detected heuristically from tokens; unnamed bodies are reported as "anonymous"

METRICS RETURNED:
- Per-function: name, complexity, start_line, end_line
- Per-file: file_complexity and loc counts
- Summary: average and maximum complexity, high complexity file count
- violations: every file and function over the warning or error threshold`
}

func describeClones() string {
	return `Finds duplicated code: token sequences of at least min_tokens significant tokens that appear in two or more places.

USE WHEN:
- Looking for copy-pasted logic to extract into a shared function
- Estimating how much code a refactoring could remove
- Reviewing whether a new change duplicates existing code

INTERPRETING RESULTS:
- Comments and whitespace are ignored; identifiers and literals must match exactly
- Overlapping matches are merged into one maximal group
- length is the number of significant tokens shared by every location
- A lower min_tokens finds smaller clones but reports more noise

METRICS RETURNED:
- clones: id, length, locations (file, start_line, end_line)
- summary: total_groups, total_locations, duplicated_lines, file_occurrences`
}

func describeLOC() string {
	return `Counts physical, logical, comment and blank lines, and ranks files or directories.

USE WHEN:
- Sizing a codebase or a subsystem
- Finding the largest files or directories
- Checking comment density

INTERPRETING RESULTS:
- logical lines carry code, even when they also carry a comment
- comment lines carry only comments
- physical = logical + comments + blank

METRICS RETURNED:
- rank_by: the metric used for ordering
- files or directories: ranked entries with their counts
- total: counts summed over every analyzed file`
}

func describeSnippet() string {
	return `Analyzes a piece of source code passed inline instead of files on disk.

USE WHEN:
- Checking the complexity of code you are about to write
- Comparing two versions of a function
- Analyzing code that is not saved to disk

INTERPRETING RESULTS:
- Same metrics as analyze_complexity for a single file
- The language must be given: go, rust, javascript, typescript, java, c, cpp, csharp or python

METRICS RETURNED:
- file: loc counts, file_complexity and functions
- violations: functions over the thresholds`
}
