package syncer

import (
	"github.com/repquest/repquest/internal/cache"
	"github.com/repquest/repquest/internal/models"
	"github.com/repquest/repquest/internal/quests"
)

// loadQuests restores the cached quest set during startup. Quests are
// local-only state and never touch the remote store.
func (s *Store) loadQuests() {
	if _, err := s.cache.Get(cache.KeyQuests, &s.quests); err != nil {
		s.log.Error("cache read failed", "key", cache.KeyQuests, "error", err)
	}
}

// DailyQuests returns today's quest set, regenerating it exactly once per
// calendar date. Once a set exists for today it is never replaced mid-day,
// even when all quests are completed.
func (s *Store) DailyQuests() []models.Quest {
	today := s.today()

	genDate, err := s.cache.GetString(cache.KeyQuestsDate)
	if err != nil {
		s.log.Error("cache read failed", "key", cache.KeyQuestsDate, "error", err)
	}

	if genDate == today && len(s.quests) > 0 {
		return s.quests
	}

	s.quests = quests.ForDate(today)
	s.persist(cache.KeyQuests, s.quests)
	if err := s.cache.PutString(cache.KeyQuestsDate, today); err != nil {
		s.log.Error("cache write failed", "key", cache.KeyQuestsDate, "error", err)
	}
	return s.quests
}
