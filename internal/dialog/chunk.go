package dialog

// ChunkLimit is the transport message-size ceiling, counted in runes so a
// multi-byte character is never split.
const ChunkLimit = 4096

// SplitMessage splits text into ordered chunks of at most limit runes.
// Concatenating the chunks reconstructs the input exactly. Empty input
// yields no chunks.
func SplitMessage(text string, limit int) []string {
	if text == "" {
		return nil
	}
	runes := []rune(text)
	chunks := make([]string, 0, (len(runes)+limit-1)/limit)
	for start := 0; start < len(runes); start += limit {
		end := start + limit
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
