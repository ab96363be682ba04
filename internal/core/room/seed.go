package room

// Seed returns the default room collection used when no snapshot exists.
func Seed() []Room {
	return []Room{
		{
			ID:               "room-001",
			Name:             "CS 101 Study Group",
			Description:      "Data Structures and Algorithms",
			ParticipantCount: 5,
			CreatedAt:        "2024-01-01",
		},
		{
			ID:               "room-002",
			Name:             "Web Dev Project",
			Description:      "Building a React app",
			ParticipantCount: 3,
			CreatedAt:        "2024-01-05",
		},
		{
			ID:               "room-003",
			Name:             "Math Homework Help",
			Description:      "Calculus problems",
			ParticipantCount: 8,
			CreatedAt:        "2024-01-08",
		},
	}
}
