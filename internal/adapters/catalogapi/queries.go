package catalogapi

// GunsQuery fetches every weapon (category "Weapon") with its naked stats,
// slots, and factory presets. Shaped to decode directly into
// []catalog.RawItem via the response's `data.items` array.
const GunsQuery = `
query Guns($lang: LanguageCode, $gameMode: GameMode) {
  items(type: gun, lang: $lang, gameMode: $gameMode) {
    id
    name
    iconLink
    weight
    bsgCategory { id name }
    buyFor { priceRUB source vendor { name normalizedName minTraderLevel } }
    conflictingItems { id }
    properties {
      ... on ItemPropertiesWeapon {
        ergonomics
        recoilVertical
        recoilHorizontal
        defaultErgonomics
        defaultRecoilVertical
        defaultRecoilHorizontal
        caliber
        sightingRange
        slots {
          id
          name
          nameId
          required
          filters { allowedItems { id } }
        }
        presets {
          id
          name
          shortName
          image512pxLink
          imageLink
          containsItems { item { id } }
          buyFor { priceRUB source vendor { name normalizedName minTraderLevel } }
        }
      }
    }
  }
}`

// ModsQuery fetches every non-weapon attachment item with its stat
// modifiers and (when it is itself a slotted item, e.g. a handguard) its
// own sub-slots.
const ModsQuery = `
query Mods($lang: LanguageCode, $gameMode: GameMode) {
  items(categoryNames: ["Mods", "Magazine", "Sights", "Headwear"], lang: $lang, gameMode: $gameMode) {
    id
    name
    iconLink
    weight
    bsgCategory { id name }
    buyFor { priceRUB source vendor { name normalizedName minTraderLevel } }
    conflictingItems { id }
    ergonomicsModifier
    recoilModifier
    minLevelForFlea
    properties {
      ... on ItemPropertiesWeaponMod {
        slots {
          id
          name
          nameId
          required
          filters { allowedItems { id } }
        }
      }
      ... on ItemPropertiesMagazine {
        capacity
        slots {
          id
          name
          nameId
          required
          filters { allowedItems { id } }
        }
      }
    }
  }
}`
