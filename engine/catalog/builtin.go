package catalog

import "github.com/nathoo/turncore/types"

// Item identifiers the handlers special-case.
const (
	ItemGoldPiece        = 54
	ItemCorpse           = 204
	ItemLovePotion       = 262
	ItemCasinoTable1     = 312
	ItemCasinoTable2     = 313
	ItemCasinoTable3     = 314
	ItemCasinoTable4     = 315
	ItemShopTrunk        = 361
	ItemAcidBottle       = 392
	ItemGachaMachine     = 413
	ItemGachaMachineGold = 414
	ItemWater            = 516
	ItemDye              = 519
	ItemSnowman          = 541
	ItemTaxBox           = 560
	ItemAcidproofLiquid  = 566
	ItemFireproofBlanket = 567
	ItemMolotov          = 577
	ItemCoinPurse        = 578
	ItemSnow             = 587
	ItemShackle          = 600
	ItemEmptyBottle      = 601
	ItemHolyWell         = 602
	ItemWell             = 603
	ItemSalaryChest      = 616
	ItemBait             = 617
	ItemPoison           = 620
	ItemSmallMedal       = 622
	ItemMoonGate         = 631
	ItemCoolerBox        = 641
	ItemMonsterBall      = 685
	ItemLittleBall       = 699
	ItemRecipeHolder     = 701
	ItemSandBag          = 733
	ItemFireproofLiquid  = 736
	ItemSummonCrystal    = 748
	ItemStairsUp         = 750
	ItemStairsDown       = 751
	ItemNewYearGift      = 752
	ItemKotatsu          = 753
	ItemTomato           = 772
	ItemRecipe           = 783
)

// Function codes select a built-in use effect.
const (
	FuncCookingTool      = 1
	FuncSewingKit        = 2
	FuncAlchemyKit       = 3
	FuncForge            = 4
	FuncStethoscope      = 5
	FuncMusicDisc        = 6
	FuncShelter          = 7
	FuncHouseBoard       = 8
	FuncTextbook         = 9
	FuncScene            = 10
	FuncMoneyBox         = 11
	FuncTorch            = 13
	FuncSnow             = 14
	FuncMagicIdentify    = 15
	FuncMagicUncurse     = 16
	FuncMagicHeal        = 17
	FuncDresser          = 19
	FuncMagicFountain    = 20
	FuncRepairHammer     = 21
	FuncRune             = 22
	FuncLeash            = 23
	FuncMine             = 24
	FuncUnicornHorn      = 25
	FuncStatueOpatos     = 26
	FuncStatueLulwy      = 27
	FuncNuke             = 28
	FuncSecretTreasure   = 29
	FuncStatueMagic      = 30
	FuncGemStone         = 31
	FuncGeneMachine      = 32
	FuncMonsterBall      = 33
	FuncStatueJure       = 34
	FuncIronMaiden       = 35
	FuncGuillotine       = 36
	FuncCardCollection   = 37
	FuncWhistle          = 39
	FuncSecretKumiromi   = 41
	FuncSecretLomias     = 42
	FuncStatueEhekatl    = 43
	FuncChair            = 44
	FuncSandBag          = 45
	FuncRope             = 46
	FuncSummoningCrystal = 47
	FuncStatueCreator    = 48
	FuncHammer           = 49
)

// Builtin returns the fixed definition set shipped with the engine.
func Builtin() []Template {
	return []Template{
		{ID: ItemGoldPiece, Name: "gold piece", Image: 433, Value: 1, Category: CategoryGold},
		{ID: 68, Name: "potion of cure light wound", Image: 108, Value: 150, Weight: 120, Category: CategoryPotion, Rarity: 300000, Param1: 100},
		{ID: 69, Name: "potion of cure major wound", Image: 108, Value: 400, Weight: 120, Category: CategoryPotion, Rarity: 150000, Level: 5, Param1: 300},
		{ID: 70, Name: "potion of confusion", Image: 108, Value: 40, Weight: 120, Category: CategoryPotion, Rarity: 200000},
		{ID: 71, Name: "potion of sleep", Image: 108, Value: 40, Weight: 120, Category: CategoryPotion, Rarity: 200000},
		{ID: 72, Name: "potion of blindness", Image: 108, Value: 40, Weight: 120, Category: CategoryPotion, Rarity: 200000},
		{ID: 73, Name: "bottle of beer", Image: 108, Value: 80, Weight: 120, Category: CategoryPotion, Rarity: 400000},
		{ID: 14, Name: "scroll of identify", Image: 470, Value: 480, Weight: 20, Category: CategoryScroll, Rarity: 300000},
		{ID: 16, Name: "scroll of teleportation", Image: 470, Value: 200, Weight: 20, Category: CategoryScroll, Rarity: 200000},
		{ID: 19, Name: "rod of magic missile", Image: 413, Value: 800, Weight: 800, Category: CategoryRod, ChargeLevel: 8, Rarity: 100000},
		{ID: 20, Name: "rod of heal", Image: 413, Value: 1200, Weight: 800, Category: CategoryRod, ChargeLevel: 6, Rarity: 80000},
		{ID: 1, Name: "long sword", Image: 1, Value: 500, Weight: 1500, DiceX: 2, DiceY: 8, HitBonus: 2, Material: 2, Category: CategoryMeleeWeapon, Rarity: 1000000},
		{ID: 2, Name: "dagger", Image: 2, Value: 500, Weight: 600, DiceX: 1, DiceY: 8, HitBonus: 5, Material: 2, Category: CategoryMeleeWeapon, Rarity: 1000000},
		{ID: 58, Name: "long bow", Image: 58, Value: 500, Weight: 1200, DiceX: 2, DiceY: 7, Material: 3, Category: CategoryRangedWeapon, Rarity: 500000},
		{ID: 61, Name: "arrow", Image: 61, Value: 150, Weight: 1200, DiceX: 1, DiceY: 8, Category: CategoryAmmo, Rarity: 500000},
		{ID: 60, Name: "bolt", Image: 61, Value: 150, Weight: 1200, DiceX: 1, DiceY: 8, Category: CategoryAmmo, Rarity: 500000},
		{ID: 80, Name: "light armor", Image: 80, Value: 600, Weight: 3500, PV: 4, DV: 2, Material: 2, Category: CategoryArmor, Rarity: 800000},
		{ID: 183, Name: "apple", Image: 190, Value: 40, Weight: 150, Category: CategoryFood, Rarity: 500000},
		{ID: 184, Name: "fish", Image: 192, Value: 60, Weight: 300, Category: CategoryFood, Rarity: 500000},
		{ID: ItemCorpse, Name: "corpse", Image: 204, Value: 80, Weight: 2000, Category: CategoryFood},
		{ID: 239, Name: "small chest", Image: 239, Value: 300, Weight: 2000, Category: CategoryContainer, Rarity: 300000},
		{ID: 240, Name: "safe", Image: 240, Value: 900, Weight: 20000, Category: CategoryContainer, Rarity: 80000},
		{ID: 241, Name: "house chest", Image: 239, Value: 1000, Weight: 20000, Category: CategoryContainer, Rarity: 0},
		{ID: 242, Name: "shop strongbox", Image: 240, Value: 1000, Weight: 20000, Category: CategoryContainer, Rarity: 0},
		{ID: ItemLovePotion, Name: "love potion", Image: 108, Value: 950, Weight: 120, Category: CategoryPotion, Rarity: 50000},
		{ID: ItemCasinoTable1, Name: "casino table", Image: 312, Value: 3000, Weight: 100000, Category: CategoryFurniture},
		{ID: ItemCasinoTable2, Name: "blackjack table", Image: 312, Value: 3000, Weight: 100000, Category: CategoryFurniture},
		{ID: ItemCasinoTable3, Name: "slot machine", Image: 313, Value: 3000, Weight: 100000, Category: CategoryFurniture},
		{ID: ItemCasinoTable4, Name: "roulette", Image: 314, Value: 3000, Weight: 100000, Category: CategoryFurniture},
		{ID: ItemShopTrunk, Name: "shopkeeper's trunk", Image: 361, Value: 380, Weight: 20000, Category: CategoryContainer},
		{ID: ItemAcidBottle, Name: "bottle of sulfuric", Image: 108, Value: 800, Weight: 120, Category: CategoryPotion, Rarity: 20000},
		{ID: ItemGachaMachine, Name: "gacha machine", Image: 413, Value: 4000, Weight: 50000, Category: CategoryFurniture},
		{ID: ItemGachaMachineGold, Name: "gold gacha machine", Image: 413, Value: 8000, Weight: 50000, Category: CategoryFurniture},
		{ID: ItemWater, Name: "bottle of water", Image: 108, Value: 100, Weight: 120, Category: CategoryPotion, Rarity: 100000},
		{ID: ItemDye, Name: "bottle of dye", Image: 108, Value: 300, Weight: 120, Category: CategoryPotion, Rarity: 50000},
		{ID: ItemSnowman, Name: "snow man", Image: 541, Value: 10, Weight: 5000, Category: CategoryFurniture},
		{ID: ItemTaxBox, Name: "tax box", Image: 560, Value: 800, Weight: 3000, Category: CategoryContainer},
		{ID: ItemAcidproofLiquid, Name: "acidproof liquid", Image: 108, Value: 1500, Weight: 120, Category: CategoryPotion, Rarity: 20000},
		{ID: ItemFireproofBlanket, Name: "fireproof blanket", Image: 567, Value: 1200, Weight: 800, Category: CategoryTool, Rarity: 20000},
		{ID: ItemMolotov, Name: "molotov", Image: 108, Value: 600, Weight: 120, Category: CategoryPotion, Rarity: 20000},
		{ID: ItemCoinPurse, Name: "coin purse", Image: 578, Value: 50, Weight: 100, Category: CategoryTool, Param1: 30},
		{ID: ItemSnow, Name: "snow", Image: 587, Value: 1, Weight: 50, Category: CategoryPotion, Function: FuncSnow},
		{ID: ItemShackle, Name: "shackle", Image: 600, Value: 1200, Weight: 2500, Category: CategoryContainer},
		{ID: ItemEmptyBottle, Name: "empty bottle", Image: 108, Value: 10, Weight: 50, Category: CategoryPotion},
		{ID: ItemHolyWell, Name: "holy well", Image: 602, Value: 5000, Weight: 100000, Category: CategoryFurniture, Subcategory: SubcategoryWell},
		{ID: ItemWell, Name: "well", Image: 603, Value: 1800, Weight: 100000, Category: CategoryFurniture, Subcategory: SubcategoryWell},
		{ID: ItemSalaryChest, Name: "salary chest", Image: 616, Value: 1200, Weight: 20000, Category: CategoryContainer},
		{ID: ItemBait, Name: "bait", Image: 617, Value: 100, Weight: 50, Category: CategoryTool, Param1: 1},
		{ID: 618, Name: "fishing pole", Image: 618, Value: 700, Weight: 1000, Category: CategoryTool},
		{ID: ItemPoison, Name: "poison", Image: 108, Value: 200, Weight: 120, Category: CategoryPotion, Rarity: 20000},
		{ID: ItemSmallMedal, Name: "small medal", Image: 622, Value: 1, Weight: 1, Category: CategoryOre},
		{ID: ItemCoolerBox, Name: "cooler box", Image: 641, Value: 2500, Weight: 2500, Category: CategoryContainer},
		{ID: ItemMonsterBall, Name: "monster ball", Image: 685, Value: 4000, Weight: 200, Category: CategoryTool, Function: FuncMonsterBall, Param2: 5},
		{ID: ItemLittleBall, Name: "little ball", Image: 699, Value: 1000, Weight: 200, Category: CategoryTool},
		{ID: ItemRecipeHolder, Name: "recipe holder", Image: 701, Value: 800, Weight: 500, Category: CategoryContainer},
		{ID: ItemSandBag, Name: "sand bag", Image: 733, Value: 1500, Weight: 2000, Category: CategoryTool, Function: FuncSandBag},
		{ID: ItemFireproofLiquid, Name: "fireproof liquid", Image: 108, Value: 1500, Weight: 120, Category: CategoryPotion, Rarity: 20000},
		{ID: ItemSummonCrystal, Name: "summoning crystal", Image: 748, Value: 500, Weight: 1000, Category: CategoryTool, Function: FuncSummoningCrystal},
		{ID: ItemNewYearGift, Name: "new year gift", Image: 752, Value: 1000, Weight: 200, Category: CategoryContainer},
		{ID: ItemTomato, Name: "tomato", Image: 772, Value: 20, Weight: 100, Category: CategoryFood, Rarity: 300000},
		{ID: ItemRecipe, Name: "recipe", Image: 783, Value: 1000, Weight: 20, Category: CategoryScroll},
		{ID: ItemMoonGate, Name: "moon gate", Image: 631, Value: 50, Weight: 50000, Category: CategoryFurniture},
		{ID: ItemStairsUp, Name: "upstairs", Image: 750, Value: 150000, Weight: 7500, Category: CategoryFurniture},
		{ID: ItemStairsDown, Name: "downstairs", Image: 751, Value: 150000, Weight: 7500, Category: CategoryFurniture},
		{ID: ItemKotatsu, Name: "kotatsu", Image: 753, Value: 1200, Weight: 12000, Category: CategoryFurniture},
		{ID: 25, Name: "spellbook of magic missile", Image: 472, Value: 800, Weight: 380, Category: CategorySpellbook, Rarity: 100000},

		{ID: 800, Name: "portable cooking tool", Image: 800, Value: 1500, Weight: 2000, Category: CategoryTool, Function: FuncCookingTool},
		{ID: 801, Name: "sewing kit", Image: 801, Value: 1500, Weight: 500, Category: CategoryTool, Function: FuncSewingKit},
		{ID: 802, Name: "alchemy kit", Image: 802, Value: 1500, Weight: 2000, Category: CategoryTool, Function: FuncAlchemyKit},
		{ID: 803, Name: "anvil", Image: 803, Value: 3000, Weight: 20000, Category: CategoryFurniture, Function: FuncForge},
		{ID: 804, Name: "stethoscope", Image: 804, Value: 700, Weight: 150, Category: CategoryTool, Function: FuncStethoscope},
		{ID: 805, Name: "music disc", Image: 805, Value: 800, Weight: 50, Category: CategoryTool, Function: FuncMusicDisc},
		{ID: 806, Name: "shelter", Image: 806, Value: 3500, Weight: 8000, Category: CategoryTool, Function: FuncShelter},
		{ID: 807, Name: "house board", Image: 807, Value: 400, Weight: 1500, Category: CategoryFurniture, Function: FuncHouseBoard},
		{ID: 808, Name: "textbook", Image: 808, Value: 1200, Weight: 800, Category: CategoryTool, Function: FuncTextbook},
		{ID: 809, Name: "book of scenes", Image: 809, Value: 600, Weight: 800, Category: CategoryTool, Function: FuncScene},
		{ID: 810, Name: "money box", Image: 810, Value: 1000, Weight: 500, Category: CategoryTool, Function: FuncMoneyBox},
		{ID: 811, Name: "torch", Image: 811, Value: 200, Weight: 1000, Category: CategoryTool, Function: FuncTorch},
		{ID: 812, Name: "scroll of appraisal", Image: 470, Value: 300, Weight: 20, Category: CategoryTool, Function: FuncMagicIdentify, Flags: types.FlagCharged, ChargeLevel: 3},
		{ID: 813, Name: "holy symbol", Image: 813, Value: 1800, Weight: 200, Category: CategoryTool, Function: FuncMagicUncurse, Flags: types.FlagCooldown, Param3: 24},
		{ID: 814, Name: "healing salve", Image: 814, Value: 600, Weight: 100, Category: CategoryTool, Function: FuncMagicHeal},
		{ID: 815, Name: "dresser", Image: 815, Value: 2000, Weight: 15000, Category: CategoryFurniture, Function: FuncDresser},
		{ID: 816, Name: "fountain of youth", Image: 816, Value: 9000, Weight: 100000, Category: CategoryFurniture, Function: FuncMagicFountain, Flags: types.FlagCooldown, Param3: 72},
		{ID: 817, Name: "repair hammer", Image: 817, Value: 900, Weight: 700, Material: 2, Category: CategoryTool, Function: FuncRepairHammer},
		{ID: 818, Name: "rune", Image: 818, Value: 1500, Weight: 100, Category: CategoryTool, Function: FuncRune},
		{ID: 819, Name: "leash", Image: 819, Value: 300, Weight: 300, Category: CategoryTool, Function: FuncLeash},
		{ID: 820, Name: "land mine", Image: 820, Value: 900, Weight: 1500, Category: CategoryTool, Function: FuncMine},
		{ID: 821, Name: "unicorn horn", Image: 821, Value: 3500, Weight: 300, Category: CategoryTool, Function: FuncUnicornHorn},
		{ID: 822, Name: "statue of Opatos", Image: 822, Value: 30000, Weight: 50000, Category: CategoryFurniture, Function: FuncStatueOpatos, Flags: types.FlagCooldown, Param3: 120},
		{ID: 823, Name: "statue of Lulwy", Image: 823, Value: 30000, Weight: 50000, Category: CategoryFurniture, Function: FuncStatueLulwy, Flags: types.FlagCooldown, Param3: 120},
		{ID: 824, Name: "nuke", Image: 824, Value: 50000, Weight: 5000, Category: CategoryTool, Function: FuncNuke},
		{ID: 825, Name: "secret treasure", Image: 825, Value: 20000, Weight: 100, Category: CategoryTool, Function: FuncSecretTreasure, Param1: 164},
		{ID: 826, Name: "altar statue", Image: 826, Value: 10000, Weight: 50000, Category: CategoryFurniture, Function: FuncStatueMagic, Param1: 1113, Param2: 300},
		{ID: 827, Name: "Kumiromi's gem stone", Image: 827, Value: 20000, Weight: 200, Category: CategoryTool, Function: FuncGemStone, Flags: types.FlagCooldown, Param3: 24},
		{ID: 828, Name: "gene machine", Image: 828, Value: 25000, Weight: 40000, Category: CategoryFurniture, Function: FuncGeneMachine},
		{ID: 829, Name: "statue of Jure", Image: 829, Value: 30000, Weight: 50000, Category: CategoryFurniture, Function: FuncStatueJure, Flags: types.FlagCooldown, Param3: 120},
		{ID: 830, Name: "iron maiden", Image: 830, Value: 5000, Weight: 40000, Category: CategoryFurniture, Function: FuncIronMaiden},
		{ID: 831, Name: "guillotine", Image: 831, Value: 5000, Weight: 40000, Category: CategoryFurniture, Function: FuncGuillotine},
		{ID: 832, Name: "card collection", Image: 832, Value: 500, Weight: 300, Category: CategoryTool, Function: FuncCardCollection},
		{ID: 833, Name: "whistle", Image: 833, Value: 200, Weight: 20, Category: CategoryTool, Function: FuncWhistle},
		{ID: 834, Name: "Kumiromi's secret experience", Image: 834, Value: 30000, Weight: 100, Category: CategoryTool, Function: FuncSecretKumiromi},
		{ID: 835, Name: "Lomias's secret experience", Image: 835, Value: 10000, Weight: 100, Category: CategoryTool, Function: FuncSecretLomias},
		{ID: 836, Name: "statue of Ehekatl", Image: 836, Value: 30000, Weight: 50000, Category: CategoryFurniture, Function: FuncStatueEhekatl, Flags: types.FlagCooldown, Param3: 120},
		{ID: 837, Name: "chair", Image: 837, Value: 300, Weight: 2000, Category: CategoryFurniture, Function: FuncChair},
		{ID: 838, Name: "rope", Image: 838, Value: 100, Weight: 500, Category: CategoryTool, Function: FuncRope},
		{ID: 839, Name: "statue of the creator", Image: 839, Value: 40000, Weight: 50000, Category: CategoryFurniture, Function: FuncStatueCreator},
		{ID: 840, Name: "hammer of Kumiromi", Image: 840, Value: 12000, Weight: 900, Category: CategoryTool, Function: FuncHammer, Flags: types.FlagCharged, ChargeLevel: 5},
		{ID: 841, Name: "flower seed", Image: 841, Value: 250, Weight: 40, Category: CategoryTool, Subcategory: SubcategorySeed},
		{ID: 842, Name: "blending bottle", Image: 842, Value: 350, Weight: 200, Category: CategoryTool, Subcategory: SubcategoryBlending},
		{ID: 843, Name: "bed", Image: 843, Value: 1200, Weight: 30000, Category: CategoryFurniture, Subcategory: SubcategoryBed},
		{ID: 844, Name: "altar", Image: 844, Value: 5000, Weight: 100000, Category: CategoryFurniture, Subcategory: SubcategoryAltar},
		{ID: 845, Name: "living sword", Image: 845, Value: 8000, Weight: 1800, DiceX: 3, DiceY: 6, Material: 2, Category: CategoryMeleeWeapon, Flags: types.FlagLiving},
	}
}

// Default builds a catalog from Builtin.
func Default() *Catalog {
	return MustNew(Builtin()...)
}
