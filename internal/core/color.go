package core

// Color names what a cell shows. The host picks the terminal color for each.
type Color uint8

const (
	ColorDefault Color = iota

	ColorAlienBasic
	ColorAlienFast
	ColorAlienHeavy
	ColorAlienSpecial
	ColorBoss

	// Ship colors, one per player.
	ColorShip1
	ColorShip2

	ColorPlayerShot
	ColorEnemyShot

	ColorHUD
	ColorHealth
	ColorTitle
	ColorFrame
	ColorDim
)
