package engine

import (
	"github.com/brainrot-tycoon/server/internal/domain/player"
	"github.com/brainrot-tycoon/server/internal/domain/quest"
	"github.com/brainrot-tycoon/server/internal/events"
)

// assignQuests deals a player their daily quests on join. Quests never
// re-roll mid-session.
func (e *Engine) assignQuests(p *player.Player) {
	p.AssignQuests(quest.Sample(quest.DailyCount, e.rng))
	if !p.IsBot {
		e.bc.SendTo(p.ID, EventQuestAssigned, map[string]any{
			"quests": p.Quests.Assigned,
		})
	}
}

// recordQuestProgress advances a player's counter for a quest category and
// resolves any quests that crossed their target.
func (e *Engine) recordQuestProgress(p *player.Player, cat quest.Category, amount float64) {
	p.Quests.Progress[cat] += amount
	e.checkQuestCompletion(p)
}

// checkQuestCompletion pays out every assigned quest whose target is met.
// Completion is idempotent: a quest pays exactly once.
func (e *Engine) checkQuestCompletion(p *player.Player) {
	for _, q := range p.Quests.Assigned {
		if p.Quests.Completed[q.ID] {
			continue
		}
		if p.Quests.Progress[q.Category] < q.Target {
			continue
		}
		p.Quests.Completed[q.ID] = true
		p.Money += q.Reward
		e.met.RecordQuestComplete()

		e.log.Info.Printf("quest complete: %s finished %q (+%.0f)", p.Username, q.Text, q.Reward)
		e.record(events.New(events.EventTypeQuestComplete, p.ID, "", map[string]any{
			"questId": string(q.ID),
			"reward":  q.Reward,
		}))
		if !p.IsBot {
			e.bc.SendTo(p.ID, EventQuestCompleted, map[string]any{
				"quest":    q,
				"reward":   q.Reward,
				"newMoney": p.Money,
			})
		}
		e.sendMoney(p)
	}
}
