package task

// Seed returns the default task collection used when no snapshot exists.
func Seed() []Task {
	return []Task{
		{
			ID:          "01HN0000000000000000TASK01",
			Title:       "Complete React assignment",
			Description: "Finish the todo app with hooks",
			Priority:    PriorityHigh,
			Status:      StatusPending,
			DueDate:     "2024-01-15",
		},
		{
			ID:          "01HN0000000000000000TASK02",
			Title:       "Study for midterm exam",
			Description: "Review chapters 1-5",
			Priority:    PriorityHigh,
			Status:      StatusInProgress,
			DueDate:     "2024-01-20",
		},
		{
			ID:          "01HN0000000000000000TASK03",
			Title:       "Group project meeting",
			Description: "Discuss project architecture",
			Priority:    PriorityMedium,
			Status:      StatusPending,
			DueDate:     "2024-01-12",
		},
		{
			ID:          "01HN0000000000000000TASK04",
			Title:       "Read research paper",
			Description: "Machine Learning fundamentals",
			Priority:    PriorityLow,
			Status:      StatusCompleted,
			DueDate:     "2024-01-10",
		},
	}
}
