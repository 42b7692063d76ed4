package view

// StatCard is a summary tile rendered by the stat_cards partial.
type StatCard struct {
	Title string
	Value string
	Color string
	Icon  string
}
