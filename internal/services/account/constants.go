package account

// MaxAccountsPerUser caps how many accounts a single user may own.
const MaxAccountsPerUser = 10

// AccountNumberSeed is the number assigned to the very first account.
const AccountNumberSeed int64 = 1000000000

// accountNumberFormat keeps account numbers at a fixed width.
const accountNumberFormat = "%010d"
