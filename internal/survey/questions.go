package survey

import "github.com/stemsi/gamesurvey-backend/internal/model"

// DefaultPools is the fixed question catalogue, keyed by tier.
var DefaultPools = map[model.Tier][]model.Question{
	model.TierEasy: {
		{Prompt: "Who is the most famous video game character of all time?", Options: [4]string{"Steve", "Mario", "Sonic", "Link"}, Answer: 1},
		{Prompt: "Who is the elven, sword-wielding hero dressed in green in the Legend of Zelda series?", Options: [4]string{"Luigi", "Ganon", "Zelda", "Link"}, Answer: 3},
		{Prompt: "Which of these is not a Rockstar-developed game?", Options: [4]string{"Grand Theft Auto 5", "Sakiro: Shadow Die Twice", "Bully", "Red Dead Redemption 2"}, Answer: 1},
		{Prompt: "What is the name of the fictional city where the Grand Theft Auto series is primarily set?", Options: [4]string{"Los Santos", "Liberty City", "Night City", "San Fierro"}, Answer: 0},
		{Prompt: "In which game do players compete in a battle royale on an island called Erangel?", Options: [4]string{"Apex Legends", "Fortnite", "PUBG", "Call of Duty: Warzone"}, Answer: 2},
		{Prompt: "Which game involves catching creatures called ‘Pocket Monsters’?", Options: [4]string{"Digital Monster", "Master Chief", "Valorant", "Pokemon"}, Answer: 3},
		{Prompt: "What is the background of Battlefield 5?", Options: [4]string{"World War I", "World War II", "Cold War", "Nova Battlefront"}, Answer: 1},
		{Prompt: "Which is impossible in Terraria?", Options: [4]string{"Drunk", "Fly", "Summon", "Teleport"}, Answer: 0},
		{Prompt: "Which video game franchise features the characters Master Chief, Cortana, and the Covenant?", Options: [4]string{"Call of Duty", "Halo", "Gears of War", "Destiny"}, Answer: 1},
		{Prompt: "What city does forza horizon 5 take place", Options: [4]string{"Dublin, Ireland", "Ankara, Turkey", "Guanajuato, Mexico", "Paris, France"}, Answer: 2},
	},
	model.TierMedium: {
		{Prompt: "Kratos is the main character of which game?", Options: [4]string{"God of War", "God Hand", "ELDEN RING", "Assassin's Creed"}, Answer: 0},
		{Prompt: "What was the first home video game console?", Options: [4]string{"Sega Genisis", "Atari 1320", "Atari 2600", "Odyssey"}, Answer: 3},
		{Prompt: "Which is not one of the victories in Sid Meier's Civilization VI?", Options: [4]string{"Domination Victory", "Prestige Victory", "Science Victory", "Culture Victory"}, Answer: 1},
		{Prompt: "Which map is not from Counter-Strike?", Options: [4]string{"Dust 2", "Inferno", "Ancient", "Haven"}, Answer: 3},
		{Prompt: "In the game 'Dark Souls', what is the name of the final boss in the base game?", Options: [4]string{"Gwyn, Lord of Cinder", "Seath the Scaleless", "The Bed of Chaos", "Nito, First of the Dead"}, Answer: 0},
	},
	model.TierHard: {
		{Prompt: "How long does it take for the bomb to explode in CS:GO? (Unit: second)", Options: [4]string{"30", "45", "60", "40"}, Answer: 3},
		{Prompt: "In 2006, Electronic Arts released FIFA Street 2 and made it available for all major video game consoles at the time. What professional football player did the cover feature?", Options: [4]string{"Ryan Giggs", "John Terry", "Cristiano Ronaldo", "David Beckham"}, Answer: 2},
		{Prompt: "In The Elder Scrolls V: Skyrim, what shout does the Dragonborn use to launch enemies into the air?", Options: [4]string{"Fus Ro Dah", "Yol Toor Shul", "Laas Yah Nir", "Od Ah Viing"}, Answer: 0},
		{Prompt: "Which material is not the ingredient of The Jackie Welles in Afterlife in Night City?", Options: [4]string{"Vodka", "Ginger beer", "Soda", "Lime juice"}, Answer: 2},
		{Prompt: "What country does the achievement 'Let's Do The Time Warp Again' related to in Sid Meier's Civilization VI? ", Options: [4]string{"Egypt", "France", "Rome", "Babylon"}, Answer: 3},
	},
}
