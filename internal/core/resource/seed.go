package resource

// Seed returns the default resource collection used when no snapshot
// exists. Newest uploads come first.
func Seed() []Resource {
	return []Resource{
		{
			ID:         "01HN00000000000000000RES04",
			Title:      "Tailwind CSS Guide",
			Type:       TypeLink,
			URL:        "https://tailwindcss.com",
			Tags:       []string{"css", "styling", "frontend"},
			UploadedAt: "2024-01-07",
		},
		{
			ID:         "01HN00000000000000000RES03",
			Title:      "JavaScript Cheat Sheet",
			Type:       TypePDF,
			URL:        "javascript-cheat-sheet.pdf",
			Tags:       []string{"javascript", "reference"},
			UploadedAt: "2024-01-05",
		},
		{
			ID:         "01HN00000000000000000RES02",
			Title:      "Data Structures Notes",
			Type:       TypePDF,
			URL:        "data-structures-notes.pdf",
			Tags:       []string{"dsa", "notes", "computer-science"},
			UploadedAt: "2024-01-03",
		},
		{
			ID:         "01HN00000000000000000RES01",
			Title:      "React Documentation",
			Type:       TypeLink,
			URL:        "https://react.dev",
			Tags:       []string{"react", "frontend", "documentation"},
			UploadedAt: "2024-01-01",
		},
	}
}
