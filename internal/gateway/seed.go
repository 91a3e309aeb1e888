package gateway

import "github.com/ironstrike-games/studio-api/types"

// Built-in seed content: the catalog and update feed served when the store
// is empty, erroring, or deliberately bypassed by policy.

var seedGames = []types.Game{
	{
		ID:          "g1",
		Title:       "RPG Fighting Simulator",
		Description: "Train your stats, unlock powerful abilities, fight bosses, and collect legendary weapons in this ultimate RPG simulation.",
		ImageURL:    "https://i.ibb.co/8LJNWLXr/no-Filter-2.jpg",
		Tags:        []string{"Update 8", "RPG"},
		Players:     "Active",
		PlayURL:     "https://www.roblox.com/games/112152012901197/x1-5-RPG-Fighting-Simulator-UPDATE-8",
	},
	{
		ID:          "g2",
		Title:       "Iron Sights [ALPHA]",
		Description: "A high-fidelity tactical First Person Shooter. Experience destructible environments and strategic gunplay.",
		ImageURL:    "https://i.ibb.co/ndx6r54/noFilter.jpg",
		Tags:        []string{"Alpha", "FPS"},
		Players:     "Testing",
		PlayURL:     "https://www.roblox.com/games/77090179992348/Iron-Sights-ALPHA",
	},
	{
		ID:          "g3",
		Title:       "Cheap Admin Troll Tower",
		Description: "Climb the tower, wield cheap admin commands, and unleash chaos on your friends in this fun sandbox experience.",
		ImageURL:    "https://i.ibb.co/9kZmhjxP/no-Filter-1.jpg",
		Tags:        []string{"10 Robux", "Funny"},
		Players:     "Active",
		PlayURL:     "https://www.roblox.com/games/126617452368540/Cheap-Admin-Troll-Tower-10-Robux",
	},
}

var seedChangelogs = []types.Changelog{
	{
		ID:          "c1",
		Title:       "RPG Sim Update 8",
		Version:     "v8.0",
		Date:        "Current",
		Description: "Added new boss raids, 50+ new weapons, and a complete UI overhaul for RPG Fighting Simulator.",
		Type:        types.ChangelogUpdate,
	},
	{
		ID:          "c2",
		Title:       "Iron Sights Alpha Release",
		Version:     "v0.1.0",
		Date:        "Oct 12",
		Description: "Initial public alpha testing for Iron Sights. Testing server stability and gun mechanics.",
		Type:        types.ChangelogEvent,
	},
	{
		ID:          "c3",
		Title:       "Group Milestone",
		Version:     "Community",
		Date:        "Sep 30",
		Description: "IronStrike Games community continues to grow. Join us for exclusive development leaks.",
		Type:        types.ChangelogEvent,
	},
}

// SeedGames returns a copy of the built-in game catalog.
func SeedGames() []types.Game {
	games := make([]types.Game, len(seedGames))
	copy(games, seedGames)
	return games
}

// SeedChangelogs returns a copy of the built-in changelog feed.
func SeedChangelogs() []types.Changelog {
	logs := make([]types.Changelog, len(seedChangelogs))
	copy(logs, seedChangelogs)
	return logs
}
