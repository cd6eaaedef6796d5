package progress

import (
	"fmt"

	"github.com/abhisek/proyo/internal/achievements"
	"github.com/abhisek/proyo/internal/skilltree"
)

// NoticeKind identifies what a notice is about.
type NoticeKind string

const (
	NoticeAchievement  NoticeKind = "achievement"
	NoticeSkill        NoticeKind = "skill"
	NoticeWeeklyReward NoticeKind = "weekly_reward"
	NoticeFocus        NoticeKind = "focus"
	NoticeInfo         NoticeKind = "info"
	NoticeCoach        NoticeKind = "coach"
)

// Notice is a user-facing message produced by a transition. Handlers return
// notices instead of delivering them; the caller decides where they go.
type Notice struct {
	Kind  NoticeKind
	Title string
	Body  string
}

func achievementNotice(id achievements.ID) Notice {
	a, ok := achievements.Get(id)
	if !ok {
		return Notice{Kind: NoticeAchievement, Title: "🏆 Logro Desbloqueado", Body: string(id)}
	}
	return Notice{
		Kind:  NoticeAchievement,
		Title: fmt.Sprintf("🏆 Logro Desbloqueado: %s", a.Name),
		Body:  a.Description,
	}
}

func skillNotice(s skilltree.Skill) Notice {
	return Notice{
		Kind:  NoticeSkill,
		Title: fmt.Sprintf("Habilidad desbloqueada: %s", s.Name),
		Body:  s.Description,
	}
}

func rewardNotice(reward string) Notice {
	body := "Alcanzaste la meta de XP semanal."
	if reward != "" {
		body = fmt.Sprintf("Alcanzaste la meta de XP semanal. Recompensa: %s", reward)
	}
	return Notice{Kind: NoticeWeeklyReward, Title: "🎁 Recompensa semanal", Body: body}
}

// Info builds a plain informational notice.
func Info(title string) Notice {
	return Notice{Kind: NoticeInfo, Title: title}
}
