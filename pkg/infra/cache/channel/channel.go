package channel

type Channel string

const ThresholdsChannel Channel = "listingguard:thresholds:updated"
