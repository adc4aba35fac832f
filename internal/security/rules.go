package security

import (
	"regexp"
	"strings"

	"github.com/jonathan/portfolio-ai/internal/profile"
)

// Rule is a named predicate over a normalized (trimmed, lower-cased) question.
type Rule struct {
	Name  string
	Match func(question string) bool
}

// patternRule builds a case-insensitive rule named after its expression
func patternRule(expr string) Rule {
	re := regexp.MustCompile(`(?i)` + expr)
	return Rule{Name: expr, Match: re.MatchString}
}

// firstMatch returns the first rule in rules that matches question
func firstMatch(rules []Rule, question string) (Rule, bool) {
	for _, r := range rules {
		if r.Match(question) {
			return r, true
		}
	}
	return Rule{}, false
}

// secondPerson words refer to the owner when a visitor addresses the assistant directly
var secondPerson = []string{"you", "your", "yours", "yourself"}

// ownerPattern returns a regexp alternation matching any owner reference as a whole word
func ownerPattern(owner profile.Owner) string {
	alts := make([]string, 0, len(owner.Variants)+len(secondPerson))
	for _, v := range owner.Variants {
		alts = append(alts, regexp.QuoteMeta(v))
	}
	alts = append(alts, secondPerson...)
	return `\b(?:` + strings.Join(alts, "|") + `)\b`
}

// implementationRules catch visitors asking how to rebuild the owner's work
func implementationRules(owner profile.Owner) []Rule {
	who := ownerPattern(owner)
	return []Rule{
		patternRule(`how\s+to\s+(build|create|implement|make|develop)\s+.*` + who),
		patternRule(`how\s+did\s+` + who + `\s+(build|create|implement|make|develop)`),
		patternRule(`show\s+me\s+how\s+to\s+(build|create|implement)\s+.*like\s+` + who),
		patternRule(`teach\s+me\s+how\s+to\s+(build|create|implement)\s+.*` + who),
		patternRule(`steps\s+to\s+(build|create|implement)\s+.*like\s+` + who),
	}
}

var injectionPatterns = []string{
	// instruction overrides
	`ignore\s+(all\s+)?(previous|prior|above)\s+(instructions?|prompts?|commands?)`,
	`forget\s+(all\s+)?(previous|prior|above)\s+(instructions?|prompts?|commands?)`,
	`override\s+(all\s+)?(previous|prior|above)\s+(instructions?|prompts?|commands?)`,
	`disregard\s+(all\s+)?(previous|prior|above)\s+(instructions?|prompts?|commands?)`,

	// role manipulation
	`you\s+are\s+(now\s+)?(a|an)\s+`,
	`act\s+as\s+(a|an)\s+`,
	`pretend\s+(to\s+be|you\s+are)\s+`,
	`roleplay\s+as\s+`,
	`simulate\s+(being\s+|a\s+|an\s+)`,

	// system prompt exposure
	`show\s+(me\s+)?(your|the)\s+(system\s+)?(prompt|instructions?)`,
	`what\s+(is\s+|are\s+)?(your|the)\s+(system\s+)?(prompt|instructions?)`,
	`reveal\s+(your|the)\s+(system\s+)?(prompt|instructions?)`,
	`display\s+(your|the)\s+(system\s+)?(prompt|instructions?)`,

	// jailbreaks
	`jailbreak`,
	`bypass\s+(your\s+)?(restrictions?|limitations?|guidelines?)`,
	`break\s+(your\s+)?(rules?|restrictions?|limitations?)`,
	`hack\s+(you|your\s+system)`,

	// special modes
	`developer\s+mode`,
	`debug\s+mode`,
	`admin\s+mode`,
	`god\s+mode`,

	// reasoning manipulation
	`let's\s+think\s+step\s+by\s+step`,
	`think\s+outside\s+the\s+box`,
	`creative\s+mode`,

	// code execution
	`execute\s+(code|script|function)`,
	`run\s+(code|script|function)`,
	`eval\s*\(`,
	`system\s*\(`,
	`subprocess`,

	// out of scope generation
	`write\s+(a\s+)?(story|poem|essay|article|code)`,
	`generate\s+(a\s+)?(story|poem|essay|article|code)`,
	`create\s+(a\s+)?(story|poem|essay|article|code)`,

	// hypothetical framing
	`imagine\s+if`,
	`what\s+if\s+(you\s+)?could`,
	`hypothetically`,
	`in\s+a\s+fictional\s+world`,

	// raw injection syntax
	`\$\{.*\}`,
	`<!--.*-->`,
	`<script.*>`,
	`javascript:`,
}

func injectionRules() []Rule {
	rules := make([]Rule, 0, len(injectionPatterns))
	for _, p := range injectionPatterns {
		rules = append(rules, patternRule(p))
	}
	return rules
}

// followedBy matches prefix and reports true when any occurrence is followed by text that
// the exempt expression does not accept. exempt is anchored at the end of the prefix match.
func followedBy(name, prefix string, exempt *regexp.Regexp) Rule {
	re := regexp.MustCompile(`(?i)` + prefix)
	return Rule{
		Name: name,
		Match: func(question string) bool {
			for _, loc := range re.FindAllStringIndex(question, -1) {
				if !exempt.MatchString(question[loc[1]:]) {
					return true
				}
			}
			return false
		},
	}
}

// aboutOthersRules reject questions about people other than the owner
func aboutOthersRules(owner profile.Owner) []Rule {
	self := regexp.MustCompile(`(?i)^` + ownerPattern(owner))
	return []Rule{
		followedBy("tell me about <someone else>", `tell\s+me\s+about\s+`, self),
		followedBy("who is <someone else>", `who\s+is\s+`, self),
		followedBy("information about <someone else>", `information\s+about\s+`, self),
	}
}

// generalKnowledgeRules reject trivia, recipes and science explainers unrelated to the owner
func generalKnowledgeRules(owner profile.Owner) []Rule {
	who := ownerPattern(owner)
	return []Rule{
		patternRule(`what\s+is\s+(the\s+)?(capital|population|president)`),
		followedBy("how to make/cook/build/create",
			`how\s+to\s+(make|cook|build|create)`,
			regexp.MustCompile(`(?i)^\s+((a\s+)?(portfolio|resume|contact)|.*`+who+`)`)),
		followedBy("explain <science>",
			`explain\s+(quantum|physics|chemistry|biology)`,
			regexp.MustCompile(`(?i)^\s+(in\s+)?`+who)),
	}
}

func forbiddenRules(owner profile.Owner) []Rule {
	rules := aboutOthersRules(owner)
	rules = append(rules, generalKnowledgeRules(owner)...)
	return append(rules,
		patternRule(`news|current\s+events|today's\s+date|weather`),
		patternRule(`nsfw|adult\s+content|explicit|inappropriate`),
	)
}

// generalKnowledge classifies a forbidden question for message selection. Exemptions do not
// apply here: a question that was already rejected is reported as general knowledge whenever
// it contains one of these phrasings.
var generalKnowledge = regexp.MustCompile(`(?i)what\s+is\s+(the\s+)?(capital|population|president)|how\s+to\s+(make|cook|build|create)|explain\s+(quantum|physics|chemistry|biology)`)

var (
	greeting   = regexp.MustCompile(`(?i)^(hi|hello|hey|good\s+(morning|afternoon|evening)|thanks?|thank\s+you)\b`)
	politeExit = regexp.MustCompile(`(?i)^(thanks?|thank\s+you|bye|goodbye|see\s+you)\b`)
)

var allowedTopics = []string{
	"experience", "work", "job", "career", "education", "degree", "university",
	"skills", "technology", "programming", "projects", "portfolio", "background", "contact",
	"email", "phone", "linkedin", "github", "resume", "achievement", "company", "startup",
	"engineering", "software", "development", "ai", "artificial intelligence", "machine learning",
	"qualification", "certification", "internship", "publication", "research",
}
