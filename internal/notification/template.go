package notification

import "fmt"

// RenderMessage builds the push title and body for an offset type. Unknown
// offset types fall back to a generic reminder.
func RenderMessage(offset OffsetType, reservationTitle string) (title, body string) {
	switch offset {
	case OneHourBefore:
		return "⏰ Meetup in 1 hour",
			fmt.Sprintf("\"%s\" starts in an hour. Time to get ready!", reservationTitle)
	case ThirtyMinBefore:
		return "⏰ Meetup in 30 minutes",
			fmt.Sprintf("\"%s\" starts in 30 minutes.", reservationTitle)
	case FiveMinBefore:
		return "🏃 Meetup in 5 minutes",
			fmt.Sprintf("\"%s\" is about to start. Don't be late!", reservationTitle)
	case FiveMinAfter:
		return "📝 How did it go?",
			fmt.Sprintf("\"%s\" just happened. Report the result for your group.", reservationTitle)
	default:
		return "Meetup reminder",
			fmt.Sprintf("You have an update for \"%s\".", reservationTitle)
	}
}
