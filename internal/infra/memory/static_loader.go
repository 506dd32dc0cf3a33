package memory

import (
	"context"
	"time"

	"pixel-trivia-service/internal/domain"
)

// StaticCatalogLoader is a loader backed by in-memory maps (the default
// content supply; also useful for tests).
type StaticCatalogLoader struct {
	categories []domain.Category
	questions  map[string][]domain.Question
}

func NewStaticCatalogLoader(categories []domain.Category, questions map[string][]domain.Question) *StaticCatalogLoader {
	return &StaticCatalogLoader{categories: categories, questions: questions}
}

func (l *StaticCatalogLoader) LoadCategory(_ context.Context, categoryID string) (domain.Category, error) {
	for _, category := range l.categories {
		if category.ID == categoryID {
			return category, nil
		}
	}
	return domain.Category{}, domain.ErrCategoryNotFound
}

func (l *StaticCatalogLoader) LoadQuestions(_ context.Context, categoryID string) ([]domain.Question, error) {
	if questions, ok := l.questions[categoryID]; ok {
		return questions, nil
	}
	// Unknown category content is an empty sequence, not a failure; the
	// caller treats it as "cannot start quiz".
	return nil, nil
}

func (l *StaticCatalogLoader) LoadCategories(_ context.Context) ([]domain.Category, error) {
	return l.categories, nil
}

// DefaultCatalog returns the built-in pixel trivia dataset: three categories
// of five questions each, fixed order as authored.
func DefaultCatalog() *StaticCatalogLoader {
	categories := []domain.Category{
		{
			ID:            "minecraft",
			Name:          "Minecraft Knowledge",
			Description:   "Test your knowledge about the popular block building game!",
			QuestionCount: 5,
			Difficulty:    domain.DifficultyMedium,
		},
		{
			ID:            "videogames",
			Name:          "Video Game Classics",
			Description:   "How well do you know your classic video games?",
			QuestionCount: 5,
			Difficulty:    domain.DifficultyEasy,
		},
		{
			ID:            "coding",
			Name:          "Coding & Programming",
			Description:   "Challenge your programming knowledge!",
			QuestionCount: 5,
			Difficulty:    domain.DifficultyHard,
		},
	}

	questions := map[string][]domain.Question{
		"minecraft": {
			{
				ID:     "mc-1",
				Prompt: "What material is needed to create a Nether Portal?",
				Options: []domain.Option{
					{ID: "mc-1-a", Text: "Diamond Blocks"},
					{ID: "mc-1-b", Text: "Obsidian", Correct: true},
					{ID: "mc-1-c", Text: "Bedrock"},
					{ID: "mc-1-d", Text: "End Stone"},
				},
				CategoryID: "minecraft",
			},
			{
				ID:     "mc-2",
				Prompt: "Which mob only spawns during a thunderstorm?",
				Options: []domain.Option{
					{ID: "mc-2-a", Text: "Enderman"},
					{ID: "mc-2-b", Text: "Blaze"},
					{ID: "mc-2-c", Text: "Charged Creeper", Correct: true},
					{ID: "mc-2-d", Text: "Wither Skeleton"},
				},
				CategoryID: "minecraft",
			},
			{
				ID:     "mc-3",
				Prompt: "What is the rarest ore in Minecraft?",
				Options: []domain.Option{
					{ID: "mc-3-a", Text: "Diamond"},
					{ID: "mc-3-b", Text: "Emerald", Correct: true},
					{ID: "mc-3-c", Text: "Ancient Debris"},
					{ID: "mc-3-d", Text: "Lapis Lazuli"},
				},
				CategoryID: "minecraft",
			},
			{
				ID:     "mc-4",
				Prompt: "How many Eyes of Ender are needed to activate the End Portal?",
				Options: []domain.Option{
					{ID: "mc-4-a", Text: "10"},
					{ID: "mc-4-b", Text: "12", Correct: true},
					{ID: "mc-4-c", Text: "9"},
					{ID: "mc-4-d", Text: "16"},
				},
				CategoryID: "minecraft",
			},
			{
				ID:     "mc-5",
				Prompt: "What is the maximum stack size for most items in Minecraft?",
				Options: []domain.Option{
					{ID: "mc-5-a", Text: "64", Correct: true},
					{ID: "mc-5-b", Text: "99"},
					{ID: "mc-5-c", Text: "16"},
					{ID: "mc-5-d", Text: "100"},
				},
				CategoryID: "minecraft",
			},
		},
		"videogames": {
			{
				ID:     "vg-1",
				Prompt: "Which character is the mascot of Nintendo?",
				Options: []domain.Option{
					{ID: "vg-1-a", Text: "Sonic"},
					{ID: "vg-1-b", Text: "Mario", Correct: true},
					{ID: "vg-1-c", Text: "Pikachu"},
					{ID: "vg-1-d", Text: "Link"},
				},
				CategoryID: "videogames",
			},
			{
				ID:     "vg-2",
				Prompt: "In what year was the first Pokemon game released?",
				Options: []domain.Option{
					{ID: "vg-2-a", Text: "1996", Correct: true},
					{ID: "vg-2-b", Text: "1998"},
					{ID: "vg-2-c", Text: "1994"},
					{ID: "vg-2-d", Text: "2000"},
				},
				CategoryID: "videogames",
			},
			{
				ID:     "vg-3",
				Prompt: "Which game features a character named Master Chief?",
				Options: []domain.Option{
					{ID: "vg-3-a", Text: "Call of Duty"},
					{ID: "vg-3-b", Text: "Gears of War"},
					{ID: "vg-3-c", Text: "Halo", Correct: true},
					{ID: "vg-3-d", Text: "Destiny"},
				},
				CategoryID: "videogames",
			},
			{
				ID:     "vg-4",
				Prompt: "What was the first video game to feature a high score table?",
				Options: []domain.Option{
					{ID: "vg-4-a", Text: "Pong"},
					{ID: "vg-4-b", Text: "Space Invaders", Correct: true},
					{ID: "vg-4-c", Text: "Pac-Man"},
					{ID: "vg-4-d", Text: "Tetris"},
				},
				CategoryID: "videogames",
			},
			{
				ID:     "vg-5",
				Prompt: "Which console was released by Sony in 1994?",
				Options: []domain.Option{
					{ID: "vg-5-a", Text: "PlayStation", Correct: true},
					{ID: "vg-5-b", Text: "Dreamcast"},
					{ID: "vg-5-c", Text: "Nintendo 64"},
					{ID: "vg-5-d", Text: "Xbox"},
				},
				CategoryID: "videogames",
			},
		},
		"coding": {
			{
				ID:     "cd-1",
				Prompt: "Which programming language was developed by Brendan Eich?",
				Options: []domain.Option{
					{ID: "cd-1-a", Text: "Python"},
					{ID: "cd-1-b", Text: "JavaScript", Correct: true},
					{ID: "cd-1-c", Text: "Java"},
					{ID: "cd-1-d", Text: "C++"},
				},
				CategoryID: "coding",
			},
			{
				ID:     "cd-2",
				Prompt: "What does CSS stand for?",
				Options: []domain.Option{
					{ID: "cd-2-a", Text: "Computer Style Sheets"},
					{ID: "cd-2-b", Text: "Creative Style System"},
					{ID: "cd-2-c", Text: "Cascading Style Sheets", Correct: true},
					{ID: "cd-2-d", Text: "Colorful Style Sheets"},
				},
				CategoryID: "coding",
			},
			{
				ID:     "cd-3",
				Prompt: "Which of these is NOT a JavaScript framework?",
				Options: []domain.Option{
					{ID: "cd-3-a", Text: "React"},
					{ID: "cd-3-b", Text: "Angular"},
					{ID: "cd-3-c", Text: "Vue"},
					{ID: "cd-3-d", Text: "Django", Correct: true},
				},
				CategoryID: "coding",
			},
			{
				ID:     "cd-4",
				Prompt: "What does HTML stand for?",
				Options: []domain.Option{
					{ID: "cd-4-a", Text: "Hyper Text Markup Language", Correct: true},
					{ID: "cd-4-b", Text: "High Tech Multi Language"},
					{ID: "cd-4-c", Text: "Hyper Text Multiple Language"},
					{ID: "cd-4-d", Text: "Hyper Tool Multi Language"},
				},
				CategoryID: "coding",
			},
			{
				ID:     "cd-5",
				Prompt: "Which data structure operates on a LIFO principle?",
				Options: []domain.Option{
					{ID: "cd-5-a", Text: "Queue"},
					{ID: "cd-5-b", Text: "Stack", Correct: true},
					{ID: "cd-5-c", Text: "Linked List"},
					{ID: "cd-5-d", Text: "Tree"},
				},
				CategoryID: "coding",
			},
		},
	}

	return NewStaticCatalogLoader(categories, questions)
}

// SeedLeaderboard returns the sample entries shipped with the original
// dataset, used to populate a fresh leaderboard.
func SeedLeaderboard() []domain.PlayerScore {
	return []domain.PlayerScore{
		{
			ID:             "seed-1",
			Name:           "PixelMaster",
			Score:          480,
			TimeSpent:      120,
			CorrectAnswers: 5,
			TotalQuestions: 5,
			CategoryID:     "minecraft",
			Date:           time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:             "seed-2",
			Name:           "GameWizard",
			Score:          450,
			TimeSpent:      150,
			CorrectAnswers: 5,
			TotalQuestions: 5,
			CategoryID:     "videogames",
			Date:           time.Date(2025, time.April, 11, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:             "seed-3",
			Name:           "CodeNinja",
			Score:          420,
			TimeSpent:      180,
			CorrectAnswers: 5,
			TotalQuestions: 5,
			CategoryID:     "coding",
			Date:           time.Date(2025, time.April, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:             "seed-4",
			Name:           "BlockBuilder",
			Score:          380,
			TimeSpent:      200,
			CorrectAnswers: 4,
			TotalQuestions: 5,
			CategoryID:     "minecraft",
			Date:           time.Date(2025, time.April, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:             "seed-5",
			Name:           "RetroGamer",
			Score:          350,
			TimeSpent:      220,
			CorrectAnswers: 4,
			TotalQuestions: 5,
			CategoryID:     "videogames",
			Date:           time.Date(2025, time.April, 8, 0, 0, 0, 0, time.UTC),
		},
	}
}
