package coach

import (
	"fmt"
	"strings"

	"github.com/abhisek/proyo/internal/progress"
)

const planSystemPrompt = `You are a pragmatic personal-development coach. You turn a person's goals into a small set of daily habits worth tracking and weekly indicators worth measuring. Reply in Spanish.`

func buildPlanUserMessage(goals progress.Goals) string {
	var b strings.Builder

	writeGoals(&b, goals)

	b.WriteString(`
Instructions:
1. List 6-10 positive actions that directly support the objective. Give each an XP value from 3 to 15; harder or more important habits earn more.
2. List 3-5 negative actions that work against the objective, each with an XP value from -15 to -5.
3. List 4-6 weekly KPIs, each with a one-word life area and a measurable indicator (for example "Ejercicio 3x semana").
4. Descriptions must be unique and short. No emojis.`)

	return b.String()
}

const sentimentSystemPrompt = `You classify the sentiment of a short end-of-day reflection written by someone tracking their habits.`

func buildSentimentUserMessage(reflection string) string {
	return fmt.Sprintf(`Reflection:
%s

Instructions:
Classify the overall tone as POSITIVE, NEUTRAL or NEGATIVE. Mixed days with a constructive outlook count as POSITIVE; plain factual summaries count as NEUTRAL.`, reflection)
}

const proactiveSystemPrompt = `You are a warm but direct personal-development coach. You write one short message (2-3 sentences, Spanish, no greeting, no emojis) that helps the user get back on track.`

func buildProactiveUserMessage(trigger Trigger, goals progress.Goals) string {
	var b strings.Builder

	writeGoals(&b, goals)

	b.WriteString("\nSituation:\n")
	switch trigger {
	case TriggerSocialMedia:
		b.WriteString("The user has logged excessive social media use on at least 3 of the last 5 days.\n")
	default:
		b.WriteString(fmt.Sprintf("%s\n", trigger))
	}

	b.WriteString(`
Instructions:
Connect the situation to the user's own motivation and suggest one small, concrete step for today. Plain text only.`)

	return b.String()
}

const reportSystemPrompt = `You are a personal-development coach writing a brief weekly progress report. Reply in Spanish, plain text, at most 6 sentences.`

// reportDays bounds how many logbook entries the report looks at.
const reportDays = 7

func buildReportUserMessage(s progress.State) string {
	var b strings.Builder
	snap := s.Snapshot

	writeGoals(&b, snap.Goals)

	b.WriteString(fmt.Sprintf("\nLevel: %s\n", snap.Level().Name))
	b.WriteString(fmt.Sprintf("Total XP: %d, weekly XP: %d, streak: %d days\n", snap.TotalXP, snap.WeeklyXP, snap.CurrentStreak))

	b.WriteString("\nKPIs:\n")
	for _, k := range snap.KPIs {
		mark := " "
		if k.Completed {
			mark = "x"
		}
		b.WriteString(fmt.Sprintf("- [%s] %s: %s\n", mark, k.Area, k.Indicator))
	}

	b.WriteString("\nRecent days:\n")
	if len(s.Log) == 0 {
		b.WriteString("None\n")
	}
	for i, e := range s.Log {
		if i == reportDays {
			break
		}
		b.WriteString(fmt.Sprintf("- %s: %d XP", progress.DateKey(e.Date), e.DailyXP))
		if e.Sentiment != "" {
			b.WriteString(fmt.Sprintf(", %s", e.Sentiment))
		}
		if e.Reflection != "" {
			b.WriteString(fmt.Sprintf(", %q", e.Reflection))
		}
		b.WriteString("\n")
	}

	b.WriteString(`
Instructions:
Summarise the week: what went well, what slipped, and one focus for next week. Refer to concrete KPIs or days where you can.`)

	return b.String()
}

func writeGoals(b *strings.Builder, goals progress.Goals) {
	b.WriteString(fmt.Sprintf("Objective: %s\n", goals.Objective))
	b.WriteString(fmt.Sprintf("Motivation: %s\n", goals.Motivation))
	b.WriteString(fmt.Sprintf("Expectation: %s\n", goals.Expectation))
}
