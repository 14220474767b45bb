package search

import "github.com/MakeNowJust/heredoc/v2"

// Example is a sample query with a short explanation.
type Example struct {
	Query       string `json:"query"`
	Description string `json:"description"`
}

var Examples = []Example{
	{`machine learning`, "Simple text search across title, content and tags"},
	{`title:"API Documentation"`, "Exact phrase in the title"},
	{`content:/regex.*pattern/`, "Regular expression in the content"},
	{`tags:python AND content:tutorial`, "Tagged python and mentioning tutorial"},
	{`title:guide OR tags:documentation`, "Guide in the title or tagged documentation"},
	{`-tags:deprecated`, "Exclude prompts tagged deprecated"},
	{`folder:"AI Projects" AND created:2024`, "Filed under AI Projects and created in 2024"},
}

var HelpText = heredoc.Doc(`
	Basic search:
	  machine learning          plain text, matched anywhere
	  "exact phrase"            quoted phrase
	  /regex.*pattern/          regular expression (also regex:pattern)

	Fields:
	  title:word                title only
	  content:word              content only
	  tags:word                 tag names
	  folder:word               folder name
	  created:2024              creation timestamp
	  updated:2024-06           last update timestamp

	Operators:
	  AND                       both sides must match (the default)
	  OR                        either side may match
	  NOT                       the following term must not match
	  -term                     exclude a single term

	Operators are applied strictly left to right: "a OR b AND c" means
	"(a OR b) AND c". Parentheses are not supported.

	Unknown field prefixes and invalid regular expressions are searched as
	plain text.
`)
