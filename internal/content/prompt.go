package content

import (
	"fmt"
	"strings"
)

const bookName = "Book of Revelation (வெளிப்படுத்தின விசேஷம்)"

const contextSystemPrompt = `You are a theologian and Bible scholar writing in Tamil.
Always answer with valid JSON containing Tamil text. Include every verse of the chapter and keep the commentary theologically sound.`

const chapterSystemPrompt = `You are a Bible quiz master. Write accurate questions based on the Tamil Bible (BSI) text.`

const examSystemPrompt = `You are a strict Bible exam examiner. Write exam questions in Tamil.`

func buildContextMessage(chapter int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s, chapter %d.\n\n", bookName, chapter)
	b.WriteString("Provide:\n")
	b.WriteString("- The full chapter text in Tamil (BSI), one entry per verse number.\n")
	b.WriteString("- A summary that tells the chapter's events as a story.\n")
	b.WriteString("- A creative title.\n")
	b.WriteString("- 2-3 key verses.\n")
	b.WriteString("- 3 memorable hints or facts.\n")
	b.WriteString("- 8-10 flashcards (front: symbol or term, back: meaning).\n")
	b.WriteString("- Commentary: the historical and cultural setting (Roman empire, geography), ")
	b.WriteString("then verse groups (e.g. 1-3, 4-8) each with a theological explanation in Tamil ")
	b.WriteString("and cross-references to the Old and New Testaments.\n")
	return b.String()
}

func buildChapterQuestionsMessage(chapter, count int) string {
	minCount := count - 5
	if minCount < 10 {
		minCount = 10
	}
	if minCount > count {
		minCount = count
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Write %d challenging multiple-choice questions in Tamil on %s chapter %d, based on the Tamil Bible (BSI).\n\n", count, bookName, chapter)
	b.WriteString("Rules:\n")
	fmt.Fprintf(&b, "- Write between %d and %d questions depending on the chapter's length.\n", minCount, count)
	b.WriteString("- Cover the whole chapter from the first verse to the last.\n")
	b.WriteString("- Exactly 4 options per question, exactly one correct.\n")
	b.WriteString("- Give the index of the correct option (0-3).\n")
	b.WriteString("- Give the verse reference, e.g. \"1:5\".\n")
	fmt.Fprintf(&b, "- Set chapter to %d.\n", chapter)
	return b.String()
}

func buildMockExamMessage(count int, style Style) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a full mock exam on the %s in Tamil with exactly %d questions.\n\n", bookName, count)

	switch style {
	case StyleAudio:
		b.WriteString("This is a spoken speed test:\n")
		b.WriteString("- Pick questions at random from chapters 1-22.\n")
		b.WriteString("- Questions must be SHORT and DIRECT (e.g. \"Who holds the seven stars?\"). ")
		b.WriteString("Each is read aloud and answered within 10 seconds, so avoid long scenarios.\n")
	default:
		b.WriteString("This is a standard written exam:\n")
		b.WriteString("- Pick questions at random from chapters 1-22.\n")
		b.WriteString("- Test deep knowledge of Revelation with a mix of easy, medium and hard questions.\n")
	}

	b.WriteString("- Exactly 4 options per question, exactly one correct.\n")
	b.WriteString("- Give the index of the correct option (0-3).\n")
	b.WriteString("- Give the verse reference.\n")
	b.WriteString("- Give the chapter number of every question.\n")
	return b.String()
}
