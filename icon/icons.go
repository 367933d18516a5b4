package icon

// Icon identifies a symbol in the registry.
type Icon int

const (
	Success Icon = iota
	Fail
	Info
	Warn
	Play
	Pause
	Scrub
	Speed
	Boundary
	Pulse
	Film
	Script
)

var icons = map[Icon]glyphs{
	Success:  {"✅", "", "✓", "(ᵔ◡ᵔ)", "▣"},
	Fail:     {"💀", "", "✖", "(×_×)", "▨"},
	Info:     {"ℹ️", "", "i", "(°ロ°)", "▤"},
	Warn:     {"⚠️", "", "!", "(・_・;)", "▥"},
	Play:     {"▶️", "", "▶", "(▶‿▶)", "▶"},
	Pause:    {"⏸️", "", "‖", "(‖_‖)", "▮"},
	Scrub:    {"👆", "", "↔", "(☞ﾟ∀ﾟ)☞", "◧"},
	Speed:    {"⏩", "", "»", "(ﾉ≧∀≦)ﾉ", "◨"},
	Boundary: {"🧱", "", "|", "(╯°□°)╯", "■"},
	Pulse:    {"💫", "", "•", "(✿◠‿◠)", "▪"},
	Film:     {"🎞️", "", "#", "(⌐■_■)", "▣"},
	Script:   {"📜", "", "=", "(￣▽￣)ノ", "▤"},
}
