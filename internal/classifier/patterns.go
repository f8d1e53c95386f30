package classifier

// typePatterns holds the keyword and phrase tables scored against the
// lower-cased transcript. The entries are heuristic defaults carried
// from production tuning; weights live in config so the tables can be
// retuned without code changes.
type typePatterns struct {
	Keywords []string
	Phrases  []string
}

var defaultPatterns = map[MeetingType]typePatterns{
	TypeTechnical: {
		Keywords: []string{
			"architecture", "api", "system", "service", "database", "deployment",
			"code", "implementation", "technical", "integration", "infrastructure",
			"backend", "frontend", "microservice", "repository", "framework",
		},
		Phrases: []string{
			"system design", "code review", "technical decision", "api design",
			"architecture decision", "technical debt", "performance issue",
		},
	},
	TypeStrategy: {
		Keywords: []string{
			"roadmap", "strategy", "planning", "objectives", "goals", "business",
			"priorities", "vision", "direction", "budget", "resources", "timeline",
			"milestone", "deliverable", "quarter", "okr", "q1", "q2", "q3", "q4",
			"allocate", "prioritize", "market", "opportunity", "initiative",
		},
		Phrases: []string{
			"business goals", "strategic direction", "product roadmap", "quarterly planning",
			"business case", "market opportunity", "resource allocation", "business objectives",
			"key objectives", "business decisions", "strategic decisions",
		},
	},
	TypeAlignment: {
		Keywords: []string{
			"coordination", "sync", "dependencies", "blockers", "teams", "alignment",
			"handoff", "collaboration", "communication", "update", "status",
			"cross-team", "integration", "workflow", "coordinate", "blocked",
		},
		Phrases: []string{
			"cross-team", "team coordination", "sync up", "alignment meeting",
			"dependency management", "team sync", "better coordination", "need alignment",
			"communication protocols", "handoff process",
		},
	},
	TypeOneOnOne: {
		Keywords: []string{
			"career", "feedback", "development", "performance", "personal", "growth",
			"promotion", "goals", "coaching", "mentoring", "review", "one-on-one",
			"individual", "pdp", "feeling", "opportunities", "skills",
		},
		Phrases: []string{
			"career development", "performance review", "personal goals", "1:1",
			"career path", "professional development", "how are you feeling",
			"leadership opportunities", "growth opportunity", "promotion track",
		},
	},
	TypeStandup: {
		Keywords: []string{
			"yesterday", "today", "tomorrow", "blocked", "blocker", "status",
			"progress", "standup", "daily", "scrum", "sprint", "working on",
			"completed", "next", "stuck", "finished", "focusing",
		},
		Phrases: []string{
			"daily standup", "what i worked on", "what i'm working on",
			"blockers", "yesterday i", "today i will", "i worked on", "i completed",
			"i'm focusing on", "i finished", "help with",
		},
	},
}

// domainVocabulary boosts types when travel-platform terms appear;
// generic enough to keep, small enough to replace per deployment
var domainVocabulary = struct {
	Teams         []string
	BusinessTerms []string
}{
	Teams: []string{
		"flights", "accommodations", "attractions", "ground transport",
		"payments", "user experience", "platform", "data", "mobile", "web",
	},
	BusinessTerms: []string{
		"supplier", "booking flow", "conversion", "user journey",
		"inventory", "pricing", "search", "recommendations",
	},
}
