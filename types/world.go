package types

// CurseState is the blessed/neutral/cursed property of an item.
type CurseState int

const (
	CurseDoomed  CurseState = -2
	CurseCursed  CurseState = -1
	CurseNone    CurseState = 0
	CurseBlessed CurseState = 1
)

// IsCursed reports whether c is cursed or doomed.
func (c CurseState) IsCursed() bool {
	return c <= CurseCursed
}

// ItemFlags is a packed set of per-item boolean properties.
type ItemFlags uint32

const (
	FlagAcidproof   ItemFlags = 1 << 1
	FlagFireproof   ItemFlags = 1 << 2
	FlagCharged     ItemFlags = 1 << 4
	FlagPoisoned    ItemFlags = 1 << 6
	FlagCooldown    ItemFlags = 1 << 7
	FlagLiving      ItemFlags = 1 << 10
	FlagAphrodisiac ItemFlags = 1 << 14
)

// Acidproof reports whether the item resists acid.
func (f ItemFlags) Acidproof() bool { return f&FlagAcidproof != 0 }

// Fireproof reports whether the item resists fire.
func (f ItemFlags) Fireproof() bool { return f&FlagFireproof != 0 }

// Charged reports whether each use spends one charge from Item.Count.
func (f ItemFlags) Charged() bool { return f&FlagCharged != 0 }

// Poisoned reports whether the food was laced with poison.
func (f ItemFlags) Poisoned() bool { return f&FlagPoisoned != 0 }

// Cooldown reports whether the item may only be used again once the game
// clock reaches Item.Count hours.
func (f ItemFlags) Cooldown() bool { return f&FlagCooldown != 0 }

// Living reports whether the item is a living weapon that grows with blood.
func (f ItemFlags) Living() bool { return f&FlagLiving != 0 }

// Aphrodisiac reports whether the food was laced with a love potion.
func (f ItemFlags) Aphrodisiac() bool { return f&FlagAphrodisiac != 0 }

// With returns f with flag set or cleared.
func (f ItemFlags) With(flag ItemFlags, on bool) ItemFlags {
	if on {
		return f | flag
	}
	return f &^ flag
}

// Item owners that are not actors.
const (
	OwnerGround    = -1 // lying on the map
	OwnerContainer = -2 // inside the storage container being browsed
)

// Enchantment is an extra property attached to one item.
type Enchantment struct {
	ID    int
	Power int
}

// Item is one live stack of items.
type Item struct {
	ID          int // catalog template identifier
	Number      int // stack size; 0 means the slot is empty
	Owner       int // actor index, or OwnerGround
	Position    Point
	Curse       CurseState
	Flags       ItemFlags
	Param1      int
	Param2      int
	Param3      int
	Param4      int
	Count       int // charges, cooldown hour, storage file number, or ammo mode
	Color       int
	Subname     int
	Weight      int
	Value       int
	Material    int
	Image       int
	OwnState    int
	Enhancement int
	Equipped    bool

	Enchantments []Enchantment
}

// ActivityKind is a multi-turn activity an actor is engaged in.
type ActivityKind string

const (
	ActivityNone     ActivityKind = ""
	ActivityEat      ActivityKind = "eat"
	ActivitySleep    ActivityKind = "sleep"
	ActivityShelter  ActivityKind = "shelter"
	ActivityDig      ActivityKind = "dig"
	ActivityFish     ActivityKind = "fish"
	ActivityMine     ActivityKind = "mine"
	ActivityMaterial ActivityKind = "material"
	ActivityRead     ActivityKind = "read"
	ActivityRest     ActivityKind = "rest"
)

// Activity is an in-progress multi-turn action.
type Activity struct {
	Kind  ActivityKind
	Turns int
	Item  int
	At    Point // cell being worked on (mining)
}

// Buff is a timed status effect.
type Buff struct {
	ID    int
	Power int
	Turns int
}

// Relationship thresholds.
const (
	RelationAlly    = 10
	RelationNeutral = 0
	RelationEnemy   = -1
	RelationHostile = -3
)

// MaxParty is the number of actor slots reserved for the player and allies.
// Index 0 is the player.
const MaxParty = 16

// Actor is a character record.
type Actor struct {
	TemplateID   int
	Name         string
	Alive        bool
	Position     Point
	NextPosition Point
	Relationship int
	Role         int
	Special      bool
	Lord         bool
	Level        int
	HP           int
	MaxHP        int
	SP           int
	Gold         int
	Weight       int
	Sex          int
	Karma        int
	Hate         int
	EnemyID      int // current target actor index, or NoIndex

	Sleep    int
	Confused int
	Drunk    int
	Dimmed   int
	Blind    int
	Furious  int
	Wet      int

	Invisible            bool
	SeeInvisible         bool
	ProtectedFromThieves bool
	HungOnSandBag        bool
	Leashed              bool
	Stethoscope          bool
	Escorted             bool
	Livestock            bool
	OwnName              bool

	CustomTalk string
	TalkTone   string
	Lines      []string
	Teleporter bool // talking to this actor requests a teleport

	Activity Activity
	Burden   int // inventory weight class; 3 is overweight, 4 cannot move
	God      string
	Piety    int
	Prayer   int         // prayer points spent when a god answers
	Spells   map[int]int // spell id to remaining casts
	Ranged   int         // equipped ranged weapon item index, or NoIndex
	Ammo     int         // equipped ammo item index, or NoIndex
	Skills   map[int]int
	Traits   map[int]int
	Buffs    []Buff
}

// Skill identifiers referenced by the engine.
const (
	SkillStrength   = 10
	SkillPerception = 13
	SkillLockpick   = 158
	SkillThrowing   = 111
	SkillGene       = 151
)

// Feature is the interactive layer of a map cell.
type Feature struct {
	Tile   int
	Kind   int
	Param1 int
	Param2 int
}

// Feature kinds.
const (
	FeatNone        = 0
	FeatUpstairs    = 10
	FeatDownstairs  = 11
	FeatTrap        = 14
	FeatMapEntrance = 15
	FeatOpenDoor    = 20
	FeatClosedDoor  = 21
	FeatHiddenPath  = 22
	FeatQuestBoard  = 23
	FeatSpotDig     = 24
	FeatSpotMine    = 25
	FeatSpotFish    = 26
	FeatSpotDig2    = 27
	FeatSpotGather  = 28
	FeatPlant       = 29
	FeatVotingBox   = 31
	FeatSmallCoin   = 32
	FeatCityChart   = 33
)

// Tile numbers carried in Feature.Tile.
const (
	TileTrap        = 234
	TileDoorClosed  = 726
	TileDownLocked  = 231
	TileDownstairs  = 232
	TilePlant       = 245
	TileHiddenFloor = 0
)

// TileKind is the terrain class of a cell.
type TileKind int

const (
	TileFloor TileKind = iota
	TileWall
	TileWater
	TileSnow
)

// Cell is one map square.
type Cell struct {
	Chip    int // raw terrain chip number
	Kind    TileKind
	Feature Feature
}

// MapType classifies the current map.
type MapType int

const (
	MapWorld MapType = iota
	MapTown
	MapGuild
	MapPlayerOwned
	MapShelter
	MapTemporary
	MapDungeon
	MapField
)

// MapID identifies notable maps.
type MapID int

const (
	MapIDNone MapID = iota
	MapIDShowHouse
	MapIDMuseum
	MapIDShop
	MapIDYourHome
	MapIDArena
	MapIDPetArena
	MapIDQuest
	MapIDFields
	MapIDNoyel
	MapIDRandomDungeon
	MapIDVoid
)

// Map is the current map and its area metadata.
type Map struct {
	ID           MapID
	Type         MapType
	Name         string
	Width        int
	Height       int
	Cells        []Cell // row-major, Width*Height
	DungeonLevel int
	DeepestLevel int
	DangerLevel  int
	Conquered    int // -1 when the area's quest has been given up or completed
	RefreshType  int
	BGM          int
	Revision     int // bumped whenever a cell changes
}

// Mef is a timed map effect (puddle, fire, acid, nuke).
type Mef struct {
	Position Point
	Kind     int
	Image    int
	Turns    int
	Power    int
	Owner    int
	ItemID   int
	Curse    CurseState
	Color    int
}

// Mef kinds.
const (
	MefAcid   = 3
	MefFire   = 5
	MefPotion = 6
	MefNuke   = 7
)

// Globals holds session-wide game values.
type Globals struct {
	Torch               int
	Weather             int
	Hours               int // game clock in hours
	ActiveHours         int // hours since the player last slept
	HolyWellCount       int
	Mount               int // mounted actor index, or 0
	Diastrophism        bool
	AcquirableFeats     int
	KumiromiNextLevel   int
	ReleasedFireGiant   bool
	FireGiant           int
	RedBlossomQuest     bool
	ImmediateQuestState int
	LastAttacked        int
	Wizard              bool
	UserMapID           int
	RightsToSucceed     int
	LeftFrom            Point
	VoidNextLordFloor   int
	MainQuest           int
	CardsOpened         int
	Shortcuts           [MaxShortcuts]Shortcut
}

// MaxShortcuts is the number of shortcut slots.
const MaxShortcuts = 20

// Shortcut is a stored command bound to a slot. Item shortcuts name a
// template; the first matching item in the inventory is used.
type Shortcut struct {
	Kind   CommandKind
	ItemID int
	Spell  int
}

// World is the complete mutable simulation state passed to every handler.
type World struct {
	Map       Map
	Actors    []Actor
	Items     []Item
	Mefs      []Mef
	Game      Globals
	TurnCount int
}
