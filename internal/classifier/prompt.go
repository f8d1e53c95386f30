package classifier

import (
	"fmt"
	"strings"
)

type implPromptBuilder struct{}

// NewPromptBuilder creates a PromptBuilder rendering the built-in
// templates
func NewPromptBuilder() PromptBuilder {
	return &implPromptBuilder{}
}

const basePrompt = `You are an expert meeting analyst for an engineering organization. Your job is to create useful summaries for any type of meeting.

MEETING CONTEXT:
- Type: %s
- Participants: %s
%s

STEP 1: Confirm the meeting type and participants
STEP 2: Extract information most relevant to this meeting type
STEP 3: Format in a consistent, scannable structure

%s

OUTPUT FORMAT:
# Meeting Summary: %s

**Meeting Info:**
- Participants: %s
- Type: %s
- Duration: %s

## Key Outcomes
%s

## Main Discussion Points
%s

## Action Items
%s

## Follow-ups & Next Steps
%s

## Blockers & Concerns
%s

---

IMPORTANT RULES:
1. Use exact quotes for technical terms, system names, and business metrics
2. Don't invent information not in the transcript
3. Focus on information most relevant to %s meetings
4. If action items aren't clear, note "Action items unclear - follow up needed"
5. Prioritize team, product, and business-metric specifics

TRANSCRIPT:
%s`

type typeInstructions struct {
	instructions     string
	outcomes         string
	discussionPoints string
	actionItems      string
	followups        string
	blockers         string
}

var instructionsByType = map[MeetingType]typeInstructions{
	TypeTechnical: {
		instructions: `FOR TECHNICAL MEETINGS:
Focus on:
- Systems/APIs/technologies discussed
- Architecture decisions made
- Technical challenges identified
- Implementation approaches
- Code review feedback
- Technical debt discussions
- Performance considerations`,
		outcomes:         "[2-3 sentence summary of technical decisions and next steps]",
		discussionPoints: "[Bullet points of technical topics: systems discussed, decisions made, technical challenges]",
		actionItems:      "[Technical tasks, code reviews, implementation work with owners and timelines]",
		followups:        "[Technical follow-ups, additional design work, code review schedules]",
		blockers:         "[Technical blockers, dependency issues, infrastructure problems]",
	},
	TypeStrategy: {
		instructions: `FOR STRATEGY MEETINGS:
Focus on:
- Goals and objectives
- Business decisions
- Resource allocation
- Timeline and milestones
- Business metrics and targets
- Product direction
- Market opportunities`,
		outcomes:         "[2-3 sentence summary of strategic decisions and business direction]",
		discussionPoints: "[Strategic topics: business goals, product direction, resource decisions]",
		actionItems:      "[Strategic tasks with owners, timelines, and success metrics]",
		followups:        "[Strategic planning sessions, business reviews, metric tracking]",
		blockers:         "[Business blockers, resource constraints, market challenges]",
	},
	TypeAlignment: {
		instructions: `FOR ALIGNMENT MEETINGS:
Focus on:
- Dependencies between teams
- Coordination points
- Blockers and their owners
- Communication protocols
- Cross-team handoffs
- Workflow coordination`,
		outcomes:         "[2-3 sentence summary of alignment agreements and coordination plans]",
		discussionPoints: "[Coordination topics: team dependencies, handoff processes, communication needs]",
		actionItems:      "[Coordination tasks, communication improvements, dependency resolution]",
		followups:        "[Regular sync meetings, dependency check-ins, coordination reviews]",
		blockers:         "[Cross-team blockers, communication gaps, dependency issues]",
	},
	TypeOneOnOne: {
		instructions: `FOR 1:1 MEETINGS:
Focus on:
- Performance feedback
- Career development topics
- Personal concerns or goals
- Manager guidance
- Growth opportunities
- Individual challenges`,
		outcomes:         "[2-3 sentence summary of career discussion and personal development focus]",
		discussionPoints: "[Personal development topics: career goals, feedback, growth opportunities]",
		actionItems:      "[Personal development tasks, career actions, skill building activities]",
		followups:        "[Career development check-ins, skill assessment, growth plan reviews]",
		blockers:         "[Personal blockers, skill gaps, career progression challenges]",
	},
	TypeStandup: {
		instructions: `FOR STANDUP MEETINGS:
Focus on:
- Work completed
- Current focus
- Blockers needing help
- Next priorities
- Sprint progress
- Team coordination`,
		outcomes:         "[2-3 sentence summary of team progress and immediate priorities]",
		discussionPoints: "[Status updates: completed work, current tasks, team progress]",
		actionItems:      "[Immediate tasks, blocker resolution, sprint commitments]",
		followups:        "[Daily coordination, sprint planning, blocker resolution]",
		blockers:         "[Individual blockers, team impediments, immediate help needed]",
	},
	TypeGeneralSync: {
		instructions: `FOR GENERAL SYNC MEETINGS:
Focus on:
- Key updates shared
- Decisions requiring follow-up
- Information flow between teams
- General coordination
- Mixed topics discussed`,
		outcomes:         "[2-3 sentence summary of key updates and decisions]",
		discussionPoints: "[General topics: updates, decisions, information sharing]",
		actionItems:      "[Various tasks and follow-ups identified]",
		followups:        "[Regular coordination, information sharing, decision follow-ups]",
		blockers:         "[General blockers and coordination issues]",
	},
}

// Build renders the full type-adapted prompt for a direct (unchunked)
// generation call
func (b *implPromptBuilder) Build(meetingType MeetingType, meta Context, transcript string) string {
	inst, ok := instructionsByType[meetingType]
	if !ok {
		inst = instructionsByType[TypeGeneralSync]
	}

	participants := "Not specified"
	if len(meta.Participants) > 0 {
		participants = strings.Join(meta.Participants, ", ")
	}

	duration := meta.DurationEstimate
	if duration == "" {
		duration = "[Estimate from content]"
	}

	return fmt.Sprintf(basePrompt,
		meetingType,
		participants,
		additionalContext(meta),
		inst.instructions,
		meetingType.Display(),
		participants,
		meetingType.Display(),
		duration,
		inst.outcomes,
		inst.discussionPoints,
		inst.actionItems,
		inst.followups,
		inst.blockers,
		meetingType,
		transcript,
	)
}

func additionalContext(meta Context) string {
	var parts []string
	if meta.Title != "" {
		parts = append(parts, "- Meeting Title: "+meta.Title)
	}
	if meta.TeamHint != "" {
		parts = append(parts, "- Team: "+meta.TeamHint)
	}
	if meta.DurationEstimate != "" {
		parts = append(parts, "- Duration: "+meta.DurationEstimate)
	}
	if meta.TimeOfDay != "" && meta.DayOfWeek != "" {
		parts = append(parts, fmt.Sprintf("- Timing: %s %s", meta.DayOfWeek, meta.TimeOfDay))
	}
	if len(parts) == 0 {
		return "- No additional context available"
	}
	return strings.Join(parts, "\n")
}

const chunkPrompt = `Analyze this meeting section for work-related content only. Skip personal chat.

CONTEXT FROM EARLIER SECTIONS:
%s

OVERLAP WITH PREVIOUS SECTION:
%s

%s

%s

Extract from this section:
- Technical/business topics discussed
- Specific decisions or choices made
- Action items with person responsible
- Technical details (systems, APIs, architecture)
- Open questions or concerns raised

Focus on substance, skip casual conversation.`

// BuildChunkPrompt renders the per-chunk prompt used during chunked
// processing, threading the carried context and overlap forward
func (b *implPromptBuilder) BuildChunkPrompt(carriedContext, overlapText, chunkInfo, content string) string {
	if carriedContext == "" {
		carriedContext = "This is the first section of the meeting."
	}
	if overlapText == "" {
		overlapText = "No overlap content."
	}
	return fmt.Sprintf(chunkPrompt, carriedContext, overlapText, chunkInfo, content)
}

const synthesisPrompt = `Create a professional meeting summary from these section analyses. Focus on business/technical content.

Meeting: %s
Date: %s
Participants: %s
Type: %s

Section summaries:
%s

Create a comprehensive summary:

## Meeting Purpose & Context
[What business/technical challenge was being addressed?]

## Key Discussion Points
[4-6 substantive topics with technical details - not generic statements]
- **[Topic]**: [Specific details, options considered, technical context]

## Action Items
[Concrete tasks with clear ownership]
- [ ] **@Person** - Specific task - **Due: Timeline** - *Priority: Level*

## Decisions Made
[Clear decisions with reasoning]

## Next Steps & Follow-ups
[Planned activities and future meetings]

## Open Questions & Risks
[Unresolved issues needing attention]

## Technical Notes
[Important technical details, systems mentioned, architectural decisions]

Focus on actionable, specific content. Exclude casual conversation.`

// BuildSynthesisPrompt renders the final-assembly prompt from all
// chunk summaries plus meeting metadata
func (b *implPromptBuilder) BuildSynthesisPrompt(meta Context, meetingType MeetingType, date string, chunkSummaries []string) string {
	participants := "Not specified"
	if len(meta.Participants) > 0 {
		participants = strings.Join(meta.Participants, ", ")
	}
	return fmt.Sprintf(synthesisPrompt,
		meta.Title,
		date,
		participants,
		meetingType.Display(),
		strings.Join(chunkSummaries, "\n\n"),
	)
}
