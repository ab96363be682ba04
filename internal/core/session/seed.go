package session

import "time"

// SeedBuffer is the code buffer contents for a freshly opened room.
const SeedBuffer = `// Welcome to the collaboration room
function greet(name) {
  return ` + "`Hello, ${name}!`" + `;
}

console.log(greet("World"));`

// SeedChat returns the starter chat transcript for a freshly opened room.
func SeedChat() []ChatMessage {
	base := time.Date(2024, 1, 10, 10, 30, 0, 0, time.UTC)
	return []ChatMessage{
		{
			ID:     "msg-001",
			Author: "Alice",
			Text:   "Hey everyone! Let's start coding.",
			SentAt: base,
		},
		{
			ID:     "msg-002",
			Author: "Bob",
			Text:   "Sounds good! I'll work on the function.",
			SentAt: base.Add(time.Minute),
		},
	}
}

// SeedRoster returns the fixed presence roster for a freshly opened
// room. The roster does not mutate during a session in the current
// design; a synchronization backend would replace this.
func SeedRoster() []Participant {
	return []Participant{
		{ID: "p-001", DisplayName: "Alice Johnson", AvatarInitials: "AJ", Online: true},
		{ID: "p-002", DisplayName: "Bob Smith", AvatarInitials: "BS", Online: true},
		{ID: "p-003", DisplayName: "Charlie Brown", AvatarInitials: "CB", Online: false},
		{ID: "p-004", DisplayName: "Diana Prince", AvatarInitials: "DP", Online: true},
	}
}
