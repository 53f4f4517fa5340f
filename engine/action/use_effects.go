package action

import (
	"context"
	"fmt"

	"github.com/nathoo/turncore/engine/catalog"
	"github.com/nathoo/turncore/engine/errs"
	"github.com/nathoo/turncore/engine/prompt"
	"github.com/nathoo/turncore/engine/state"
	"github.com/nathoo/turncore/types"
)

// Effect ids passed to Magic by item functions.
const (
	SpellEnchantWeapon = 49
	SpellRepair        = 21
	SpellHeal          = 183
	SpellIdentify      = 184
	SpellUncurse       = 185
	SpellFountain      = 458
	SpellPurify        = 637
)

// Buffs and traits granted by item functions.
const (
	BuffLuck           = 19
	TraitPerfectHealth = 162
	TraitFrail         = 169
)

// Weather values.
const (
	WeatherSunny     = 0
	WeatherEtherwind = 1
	WeatherSnow      = 2
	WeatherRain      = 3
	WeatherHardRain  = 4
)

// moneyBoxSteps are the deposits a money box takes, indexed by Param2.
var moneyBoxSteps = []int{500, 2000, 10000, 50000, 500000, 5000000, 100000000}

const moneyBoxLimit = 1000000000

// Nuke target spot while the red blossom quest is active.
var nukeQuestSpot = types.Point{X: 33, Y: 16}

type useEffect func(ctx context.Context, at *attempt, idx int) (types.Outcome, error)

// useEffects maps item function codes to built-in effects.
var useEffects = map[int]useEffect{
	catalog.FuncStethoscope:      useStethoscope,
	catalog.FuncMusicDisc:        useMusicDisc,
	catalog.FuncShelter:          useShelter,
	catalog.FuncHouseBoard:       useHouseBoard,
	catalog.FuncTextbook:         useTextbook,
	catalog.FuncScene:            useScene,
	catalog.FuncMoneyBox:         useMoneyBox,
	catalog.FuncTorch:            useTorch,
	catalog.FuncSnow:             useSnow,
	catalog.FuncMagicIdentify:    castEffect(SpellIdentify, 100),
	catalog.FuncMagicUncurse:     castEffect(SpellUncurse, 100),
	catalog.FuncMagicHeal:        castEffect(SpellHeal, 100),
	catalog.FuncDresser:          useDresser,
	catalog.FuncMagicFountain:    castEffect(SpellFountain, 400),
	catalog.FuncRepairHammer:     useRepairHammer,
	catalog.FuncRune:             useRune,
	catalog.FuncLeash:            useLeash,
	catalog.FuncMine:             useMine,
	catalog.FuncUnicornHorn:      useUnicornHorn,
	catalog.FuncStatueOpatos:     useStatueOpatos,
	catalog.FuncStatueLulwy:      useStatueLulwy,
	catalog.FuncNuke:             useNuke,
	catalog.FuncSecretTreasure:   useSecretTreasure,
	catalog.FuncStatueMagic:      useStatueMagic,
	catalog.FuncGemStone:         useGemStone,
	catalog.FuncGeneMachine:      useGeneMachine,
	catalog.FuncMonsterBall:      useMonsterBall,
	catalog.FuncStatueJure:       useStatueJure,
	catalog.FuncIronMaiden:       useDeathTrap("iron maiden"),
	catalog.FuncGuillotine:       useDeathTrap("guillotine"),
	catalog.FuncCardCollection:   useCardCollection,
	catalog.FuncWhistle:          useWhistle,
	catalog.FuncSecretKumiromi:   useSecretKumiromi,
	catalog.FuncSecretLomias:     useSecretLomias,
	catalog.FuncStatueEhekatl:    useStatueEhekatl,
	catalog.FuncChair:            useChair,
	catalog.FuncSandBag:          useSandBag,
	catalog.FuncRope:             useRope,
	catalog.FuncSummoningCrystal: useSummoningCrystal,
	catalog.FuncStatueCreator:    useStatueCreator,
	catalog.FuncHammer:           useHammer,
}

func castEffect(id, power int) useEffect {
	return func(ctx context.Context, at *attempt, idx int) (types.Outcome, error) {
		if _, err := at.castFrom(ctx, idx, id, power); err != nil {
			return 0, err
		}
		return turnEnds()
	}
}

func useMine(_ context.Context, at *attempt, idx int) (types.Outcome, error) {
	if at.w.Map.Type == types.MapWorld {
		return 0, errs.Blocked("You can't use it here.").WithKey("use.mine.cannot_use_here")
	}
	p := at.actor().Position
	if c := state.CellAt(&at.w.Map, p); c == nil || c.Feature.Kind != types.FeatNone {
		return 0, errs.Blocked("You can't place it here.").WithKey("use.mine.cannot_place_here")
	}
	at.consume(idx, 1)
	state.SetFeature(&at.w.Map, p, types.Feature{Kind: types.FeatTrap, Param1: 7, Param2: at.cmd.Actor})
	at.say("use.mine.you_set_up", "You set up the mine.", types.ToneNormal)
	return turnEnds()
}

func useChair(ctx context.Context, at *attempt, idx int) (types.Outcome, error) {
	it := &at.w.Items[idx]
	if it.Owner != types.OwnerGround {
		return 0, errs.InvalidItemState("You need to put it on the ground first.").WithKey("use.chair.needs_place_on_ground")
	}
	name := at.itemName(it)
	at.sayf("use.chair.you_sit_on", types.ToneNormal, "You sit on %s.", name)

	options := []prompt.Option{{ID: 0, Label: "Relax."}}
	if it.Param1 != 1 {
		options = append(options, prompt.Option{ID: 1, Label: "It's my chair."})
	}
	if it.Param1 != 2 {
		options = append(options, prompt.Option{ID: 2, Label: "It's for my guest."})
	}
	if it.Param1 != 0 {
		options = append(options, prompt.Option{ID: 3, Label: "It's free to use."})
	}
	choice, err := at.choose(ctx, "What do you want to do with the chair?", options)
	if err != nil {
		return 0, err
	}
	switch choice {
	case 0:
		at.say("use.chair.relax", "You relax.", types.ToneNormal)
	case 1:
		it.Param1 = 1
		at.sayf("use.chair.my_chair", types.ToneNormal, "%s is your chair now.", name)
	case 2:
		it.Param1 = 2
		at.sayf("use.chair.guest_chair", types.ToneNormal, "%s is used by your guests now.", name)
	case 3:
		it.Param1 = 0
		at.sayf("use.chair.free_chair", types.ToneNormal, "%s can be used by anyone.", name)
	}
	return turnEnds()
}

func useHouseBoard(_ context.Context, at *attempt, idx int) (types.Outcome, error) {
	if at.w.Map.Type != types.MapPlayerOwned {
		return 0, errs.Blocked("You can't use it here.").WithKey("use.house_board.cannot_use_it_here")
	}
	return at.submenu(types.SubmenuHouseBoard, 0, 0, idx)
}

func useDresser(ctx context.Context, at *attempt, _ int) (types.Outcome, error) {
	_, tc, err := at.direction(ctx, "Make up who?")
	if err != nil {
		return 0, err
	}
	if tc == types.NoIndex || !state.IsParty(tc) {
		return 0, errs.InvalidTarget("It's impossible.").WithKey("common.it_is_impossible")
	}
	at.sayf("use.dresser.change", types.ToneNormal, "You change the appearance of %s.", at.w.Actors[tc].Name)
	at.emit("appearance_changed", map[string]any{"actor": tc})
	return keep()
}

func useSnow(_ context.Context, at *attempt, idx int) (types.Outcome, error) {
	if at.cmd.Actor == 0 {
		if at.w.Items[idx].Number < 5 {
			return 0, errs.Insufficient("You need more snow.").WithKey("use.snow.need_more")
		}
		at.consume(idx, 5)
	}
	if _, err := at.create(catalog.ItemSnowman, types.OwnerGround, at.player().Position, 1); err != nil {
		return 0, err
	}
	at.sayf("use.snow.make_snowman", types.ToneNormal, "%s build a snow man!", at.actor().Name)
	return turnEnds()
}

func useTorch(_ context.Context, at *attempt, _ int) (types.Outcome, error) {
	if at.w.Game.Torch == 0 {
		at.w.Game.Torch = 1
		at.say("use.torch.light", "You light up the torch.", types.ToneNormal)
	} else {
		at.w.Game.Torch = 0
		at.say("use.torch.put_out", "You put out the fire.", types.ToneNormal)
	}
	return turnEnds()
}

func useTextbook(ctx context.Context, at *attempt, idx int) (types.Outcome, error) {
	skill := at.w.Items[idx].Param1
	if state.Skill(at.actor(), skill) == 0 {
		if err := at.confirm(ctx, "You are not interested in this book. Do you want to read it anyway?"); err != nil {
			return 0, err
		}
	}
	at.actor().Activity = types.Activity{Kind: types.ActivityRead, Turns: 50, Item: idx}
	at.say("use.textbook.start", "You start to read the book.", types.ToneNormal)
	return turnEnds()
}

func useStethoscope(ctx context.Context, at *attempt, _ int) (types.Outcome, error) {
	_, tc, err := at.direction(ctx, "Auscultate who?")
	if err != nil {
		return 0, err
	}
	if tc == 0 {
		at.say("use.stethoscope.self", "You hear your heart beating.", types.ToneNormal)
		at.w.Game.LastAttacked = 0
		return turnEnds()
	}
	if tc > 0 && state.IsParty(tc) && state.Alive(at.w, tc) {
		at.w.Game.LastAttacked = 0
		t := &at.w.Actors[tc]
		if t.Stethoscope {
			t.Stethoscope = false
			at.sayf("use.stethoscope.other.stop", types.ToneNormal, "You stop checking %s's health.", t.Name)
			return turnEnds()
		}
		t.Stethoscope = true
		at.sayf("use.stethoscope.other.start", types.ToneNormal, "You start to check %s's health.", t.Name)
		return turnEnds()
	}
	return 0, errs.InvalidTarget("It's impossible.").WithKey("common.it_is_impossible")
}

func useLeash(ctx context.Context, at *attempt, idx int) (types.Outcome, error) {
	_, tc, err := at.direction(ctx, "Leash who?")
	if err != nil {
		return 0, err
	}
	switch {
	case tc == types.NoIndex:
		at.say("common.it_is_impossible", "It's impossible.", types.ToneNormal)
	case tc == 0:
		at.say("use.leash.self", "You leash yourself...", types.ToneNormal)
	case !at.w.Actors[tc].Leashed:
		t := &at.w.Actors[tc]
		if !state.IsParty(tc) && at.rnd(5) == 0 {
			at.sayf("use.leash.other.start.resists", types.ToneNormal, "%s resists and the leash snaps.", t.Name)
			at.consume(idx, 1)
			return turnEnds()
		}
		t.Leashed = true
		at.sayf("use.leash.other.start", types.ToneNormal, "You leash %s.", t.Name)
	default:
		t := &at.w.Actors[tc]
		t.Leashed = false
		at.sayf("use.leash.other.stop", types.ToneNormal, "You unleash %s.", t.Name)
	}
	return turnEnds()
}

func useSandBag(ctx context.Context, at *attempt, idx int) (types.Outcome, error) {
	if at.w.Map.ID == types.MapIDShowHouse {
		return 0, errs.Blocked("You can't use it here.").WithKey("use.sandbag.cannot_use_here")
	}
	_, tc, err := at.direction(ctx, "Hang who?")
	if err != nil {
		return 0, err
	}
	if tc == types.NoIndex {
		at.say("common.it_is_impossible", "It's impossible.", types.ToneNormal)
		return turnEnds()
	}
	t := &at.w.Actors[tc]
	if t.HP >= t.MaxHP/5 {
		return 0, errs.InvalidTarget("The target needs to be weakened first.").WithKey("use.sandbag.not_weak_enough")
	}
	if tc != 0 && state.IsParty(tc) {
		return 0, errs.InvalidTarget("You can't hang your ally.").WithKey("use.sandbag.ally")
	}
	if t.HungOnSandBag {
		return 0, errs.InvalidTarget("It's already hanging.").WithKey("use.sandbag.already")
	}
	if tc == 0 {
		at.say("use.sandbag.self", "You try to hang yourself but fail.", types.ToneNormal)
		return turnEnds()
	}
	t.HungOnSandBag = true
	at.consume(idx, 1)
	at.sayf("use.sandbag.start", types.ToneNormal, "You hang %s on the sand bag.", t.Name)
	return turnEnds()
}

func useMusicDisc(_ context.Context, at *attempt, idx int) (types.Outcome, error) {
	at.w.Map.BGM = min(at.w.Items[idx].Param1+51, 97)
	at.sayf("use.music_disc.play", types.ToneNormal, "You play %s.", at.itemName(&at.w.Items[idx]))
	return turnEnds()
}

func useScene(_ context.Context, at *attempt, idx int) (types.Outcome, error) {
	return at.submenu(types.SubmenuScene, 0, 0, idx)
}

func useShelter(ctx context.Context, at *attempt, idx int) (types.Outcome, error) {
	m := &at.w.Map
	if at.w.Items[idx].OwnState != 3 {
		if m.RefreshType == 0 || m.ID == types.MapIDQuest || m.Type == types.MapShelter {
			if m.ID == types.MapIDFields {
				return 0, errs.Blocked("You can only use it in the world map.").WithKey("use.shelter.only_in_world_map")
			}
			return 0, errs.Blocked("You can't build it here.").WithKey("use.shelter.cannot_build_it_here")
		}
		at.actor().Activity = types.Activity{Kind: types.ActivityShelter, Turns: 20, Item: idx}
		return turnEnds()
	}
	if m.ID == types.MapIDRandomDungeon && m.DungeonLevel == m.DeepestLevel && m.Conquered != -1 {
		at.say("use.shelter.during_quest", "You are in the middle of a quest. Really go into the shelter?", types.ToneAlert)
		if err := at.confirm(ctx, "Really use the shelter?"); err != nil {
			return 0, err
		}
	}
	at.actor().Activity = types.Activity{Kind: types.ActivityShelter, Turns: 1, Item: idx}
	return turnEnds()
}

func useMoneyBox(_ context.Context, at *attempt, idx int) (types.Outcome, error) {
	it := &at.w.Items[idx]
	step := moneyBoxSteps[max(0, min(it.Param2, len(moneyBoxSteps)-1))]
	p := at.player()
	if step > p.Gold {
		return 0, errs.Insufficient("You count your coins and sigh...").WithKey("use.money_box.not_enough_gold")
	}
	if it.Param1 >= moneyBoxLimit {
		return 0, errs.InvalidItemState("The money box is full.").WithKey("use.money_box.full")
	}
	idx = state.Separate(at.w, idx)
	it = &at.w.Items[idx]
	p.Gold -= step
	it.Param1 += step
	it.Weight += 100
	at.sayf("use.money_box.deposit", types.ToneNormal, "You put %d gold pieces in the money box.", step)
	return turnEnds()
}

func useSummoningCrystal(_ context.Context, at *attempt, _ int) (types.Outcome, error) {
	at.say("use.summoning_crystal.use", "It's dim. Nothing happens.", types.ToneNormal)
	return turnEnds()
}

func useRune(ctx context.Context, at *attempt, idx int) (types.Outcome, error) {
	if at.w.Map.Type != types.MapTown && at.w.Map.Type != types.MapGuild {
		at.say("use.rune.only_in_town", "You can only use it in a town.", types.ToneNormal)
		return turnEnds()
	}
	at.consume(idx, 1)
	at.say("use.rune.use", "The rune glows.", types.ToneNormal)
	ok, err := at.d.deps.Prompter.YesNo(ctx, "Do you want to visit a showroom?")
	if err != nil {
		return 0, err
	}
	if ok {
		return at.exitMap(types.ExitGate)
	}
	return turnEnds()
}

func useHammer(ctx context.Context, at *attempt, idx int) (types.Outcome, error) {
	at.sayf("use.hammer.use", types.ToneNormal, "You swing %s.", at.itemName(&at.w.Items[idx]))
	return castEffect(SpellEnchantWeapon, 100)(ctx, at, idx)
}

func useRepairHammer(ctx context.Context, at *attempt, idx int) (types.Outcome, error) {
	at.sayf("use.hammer.use", types.ToneNormal, "You swing %s.", at.itemName(&at.w.Items[idx]))
	at.consume(idx, 1)
	return castEffect(SpellRepair, 500)(ctx, at, idx)
}

func useUnicornHorn(ctx context.Context, at *attempt, idx int) (types.Outcome, error) {
	at.sayf("use.unicorn_horn.use", types.ToneNormal, "You hold %s up high.", at.itemName(&at.w.Items[idx]))
	at.consume(idx, 1)
	return castEffect(SpellPurify, 500)(ctx, at, idx)
}

func activateStatue(at *attempt, idx int) {
	at.sayf("use.statue.activate", types.ToneNormal, "You activate %s.", at.itemName(&at.w.Items[idx]))
}

func useStatueOpatos(_ context.Context, at *attempt, idx int) (types.Outcome, error) {
	activateStatue(at, idx)
	at.w.Game.Diastrophism = true
	at.say("use.statue.opatos", "Opatos: \"Behold the earth shake!\"", types.ToneDivine)
	return turnEnds()
}

func useStatueJure(ctx context.Context, at *attempt, idx int) (types.Outcome, error) {
	activateStatue(at, idx)
	at.say("use.statue.jure", "Jure: \"Let me heal you.\"", types.ToneDivine)
	return castEffect(SpellPurify, 5000)(ctx, at, idx)
}

func useStatueEhekatl(_ context.Context, at *attempt, idx int) (types.Outcome, error) {
	activateStatue(at, idx)
	at.say("use.statue.ehekatl", "Ehekatl: \"Lucky!\"", types.ToneDivine)
	state.AddBuff(at.actor(), types.Buff{ID: BuffLuck, Power: 77, Turns: 2500})
	return turnEnds()
}

func useStatueLulwy(_ context.Context, at *attempt, idx int) (types.Outcome, error) {
	activateStatue(at, idx)
	g := &at.w.Game
	if g.Weather == WeatherEtherwind {
		at.say("use.statue.lulwy.during_etherwind", "Lulwy: \"You dare call me during the etherwind?\"", types.ToneDivine)
		return turnEnds()
	}
	prev := g.Weather
	for g.Weather == prev {
		if at.rnd(10) == 0 {
			g.Weather = WeatherSunny
		}
		if at.rnd(10) == 0 {
			g.Weather = WeatherRain
		}
		if at.rnd(15) == 0 {
			g.Weather = WeatherHardRain
		}
		if at.rnd(20) == 0 {
			g.Weather = WeatherSnow
		}
	}
	at.say("use.statue.lulwy.normal", "Lulwy: \"As you wish.\"", types.ToneDivine)
	at.say("weather.changes", "The weather changes.", types.ToneNormal)
	at.emit("weather_changed", map[string]any{"from": prev, "to": g.Weather})
	return turnEnds()
}

func useNuke(ctx context.Context, at *attempt, idx int) (types.Outcome, error) {
	if at.w.Map.Type == types.MapWorld {
		return 0, errs.Blocked("You can't place it here.").WithKey("use.nuke.cannot_place_here")
	}
	p := at.actor().Position
	if at.player().Position != nukeQuestSpot && at.w.Game.RedBlossomQuest {
		at.say("use.nuke.not_quest_goal", "This location is not your quest goal.", types.ToneAlert)
		if err := at.confirm(ctx, "Really set up the nuke here?"); err != nil {
			return 0, err
		}
	}
	at.consume(idx, 1)
	at.say("use.nuke.set_up", "You set up the nuke... now run!!", types.ToneAlert)
	state.AddMef(at.w, types.Mef{Position: p, Kind: types.MefNuke, Image: 632, Turns: 10, Power: 100, Owner: at.cmd.Actor})
	return turnEnds()
}

func useStatueCreator(_ context.Context, at *attempt, _ int) (types.Outcome, error) {
	if at.w.Map.ID != types.MapIDShowHouse || at.w.Game.UserMapID == 0 {
		at.say("use.statue.creator.normal", "It's a statue of the creator.", types.ToneNormal)
		return turnEnds()
	}
	at.say("use.statue.creator.in_usermap", "You can't use it in a user map.", types.ToneNormal)
	return turnEnds()
}

func useSecretTreasure(_ context.Context, at *attempt, idx int) (types.Outcome, error) {
	trait := at.w.Items[idx].Param1
	a := at.actor()
	state.SetTrait(a, trait, 1)
	switch trait {
	case TraitFrail:
		state.SetTrait(a, TraitPerfectHealth, 0)
	case TraitPerfectHealth:
		state.SetTrait(a, TraitFrail, 0)
	}
	at.consume(idx, 1)
	at.say("use.secret_treasure.use", "You gain a new trait.", types.ToneGood)
	return turnEnds()
}

func useStatueMagic(ctx context.Context, at *attempt, idx int) (types.Outcome, error) {
	activateStatue(at, idx)
	it := at.w.Items[idx]
	_, err := at.cast(ctx, Spell{
		ID:     it.Param1,
		Power:  it.Param2,
		Caster: at.cmd.Actor,
		Target: at.cmd.Actor,
		Curse:  types.CurseNone,
		Item:   idx,
		Source: SourceUse,
	})
	if err != nil {
		return 0, err
	}
	return turnEnds()
}

func useSecretKumiromi(_ context.Context, at *attempt, idx int) (types.Outcome, error) {
	g := &at.w.Game
	if g.KumiromiNextLevel > at.player().Level {
		return 0, errs.Insufficient("You lack the experience to understand it.").WithKey("use.secret_experience.kumiromi.not_enough_exp")
	}
	g.KumiromiNextLevel += 10
	at.consume(idx, 1)
	g.AcquirableFeats++
	at.say("use.secret_experience.kumiromi.use", "You can acquire a new feat.", types.ToneDivine)
	return turnEnds()
}

func useSecretLomias(_ context.Context, at *attempt, _ int) (types.Outcome, error) {
	at.say("use.secret_experience.lomias", "Lomias: \"Not now, pal.\"", types.ToneDialog)
	return turnEnds()
}

func useRope(ctx context.Context, at *attempt, _ int) (types.Outcome, error) {
	ok, err := at.d.deps.Prompter.YesNo(ctx, "Really hang yourself?")
	if err != nil {
		return 0, err
	}
	if !ok {
		return turnEnds()
	}
	if err := at.damage(ctx, 0, 99999, "rope"); err != nil {
		return 0, err
	}
	return turnEnds()
}

func useMonsterBall(ctx context.Context, at *attempt, idx int) (types.Outcome, error) {
	it := at.w.Items[idx]
	if it.Subname == 0 {
		at.say("use.monster_ball.empty", "This ball is empty.", types.ToneNormal)
		return turnEnds()
	}
	if state.FreeAllySlot(at.w) == types.NoIndex {
		at.say("use.monster_ball.party_is_full", "Your party is already full.", types.ToneNormal)
		return turnEnds()
	}
	at.sayf("use.monster_ball.use", types.ToneNormal, "You release the creature in %s.", at.itemName(&it))
	at.consume(idx, 1)
	ally, err := at.d.deps.Spawner.Spawn(ctx, at.w, it.Subname, it.Param3, true, at.player().Position)
	if err != nil {
		return 0, err
	}
	at.emit("ally_joined", map[string]any{"actor": ally})
	return turnEnds()
}

func useGemStone(_ context.Context, at *attempt, _ int) (types.Outcome, error) {
	p := at.actor().Position
	c := state.CellAt(&at.w.Map, p)
	if c == nil || c.Feature.Kind != types.FeatPlant {
		at.say("use.gem_stone.kumiromi.no_plant", "There's no plant here.", types.ToneNormal)
		return turnEnds()
	}
	f := c.Feature
	switch f.Tile {
	case types.TilePlant + 2:
		at.say("use.gem_stone.kumiromi.already_grown", "The plant is already grown.", types.ToneNormal)
		return turnEnds()
	case types.TilePlant + 3:
		f.Tile = types.TilePlant + 1
		at.say("use.gem_stone.kumiromi.revives", "The plant revives.", types.ToneGood)
	default:
		f.Tile++
		at.say("use.gem_stone.kumiromi.grows", "The plant grows.", types.ToneGood)
	}
	state.SetFeature(&at.w.Map, p, f)
	return turnEnds()
}

// allyOptions lists the living allies except skip.
func allyOptions(w *types.World, skip int) []prompt.Option {
	var out []prompt.Option
	for i := 1; i < types.MaxParty && i < len(w.Actors); i++ {
		if i == skip || !w.Actors[i].Alive {
			continue
		}
		out = append(out, prompt.Option{ID: i, Label: fmt.Sprintf("%s (Lv %d)", w.Actors[i].Name, w.Actors[i].Level)})
	}
	return out
}

func useGeneMachine(ctx context.Context, at *attempt, _ int) (types.Outcome, error) {
	originals := allyOptions(at.w, types.NoIndex)
	if len(originals) < 2 {
		return 0, errs.InvalidTarget("You need two allies to use the gene machine.").WithKey("use.gene_machine.no_allies")
	}
	rc, err := at.choose(ctx, "Choose the original body.", originals)
	if err != nil {
		return 0, err
	}
	tc, err := at.choose(ctx, "Choose the gene donor.", allyOptions(at.w, rc))
	if err != nil {
		return 0, err
	}
	orig, subj := &at.w.Actors[rc], &at.w.Actors[tc]
	if err := at.confirm(ctx, fmt.Sprintf("Really inherit %s's gene to %s? (%s will be lost)", subj.Name, orig.Name, subj.Name)); err != nil {
		return 0, err
	}

	at.sayf("use.gene_machine.has_inherited", types.ToneDivine, "%s has inherited %s's gene!", orig.Name, subj.Name)
	if subj.Level > orig.Level {
		orig.Level += (subj.Level-orig.Level)/2 + 1
		at.sayf("use.gene_machine.gains.level", types.ToneGood, "%s is now level %d.", orig.Name, orig.Level)
	}
	state.Vanquish(at.w, tc)
	state.GainSkill(at.player(), types.SkillGene, 1)
	at.emit("gene_transplanted", map[string]any{"original": rc, "donor": tc})
	return turnEnds()
}

func useDeathTrap(name string) useEffect {
	return func(ctx context.Context, at *attempt, _ int) (types.Outcome, error) {
		at.sayf("use."+name, types.ToneNormal, "You enter the %s.", name)
		at.say("use.iron_maiden.grin", "\"Interesting!\" Someone activates it with a grin.", types.ToneAlert)
		if err := at.damage(ctx, 0, 9999, name); err != nil {
			return 0, err
		}
		return turnEnds()
	}
}

func useWhistle(_ context.Context, at *attempt, _ int) (types.Outcome, error) {
	at.say("use.whistle.use", "*Peeeeeeeeeep*", types.ToneAlert)
	at.emit("noise", map[string]any{"at": at.actor().Position, "radius": 10})
	return turnEnds()
}

func useCardCollection(_ context.Context, at *attempt, idx int) (types.Outcome, error) {
	return at.submenu(types.SubmenuCardCollection, 0, 0, idx)
}
