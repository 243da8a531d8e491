package hebrew

// monthDay keys the fixed lookup tables.
type monthDay struct {
	month int
	day   int
}

// monthNames is indexed by month number; Adar 1 in leap years is handled in
// MonthName.
var monthNames = [...]string{
	"",
	"Nissan",
	"Iyar",
	"Sivan",
	"Tammuz",
	"Av",
	"Elul",
	"Tishrei",
	"Cheshvan",
	"Kislev",
	"Teves",
	"Shvat",
	"Adar",
	"Adar 2",
}

// festivals holds the diaspora Yom Tov days. Working holidays (Chanukah,
// Purim, chol hamoed) are intentionally absent.
var festivals = map[monthDay]string{
	{MonthTishrei, 1}:  "Rosh Hashana",
	{MonthTishrei, 2}:  "Rosh Hashana",
	{MonthTishrei, 10}: "Yom Kippur",
	{MonthTishrei, 15}: "Succos",
	{MonthTishrei, 16}: "Succos",
	{MonthTishrei, 22}: "Shmini Atzeres",
	{MonthTishrei, 23}: "Simchas Torah",

	{MonthNisan, 15}: "Pesach",
	{MonthNisan, 16}: "Pesach",
	{MonthNisan, 21}: "Pesach",
	{MonthNisan, 22}: "Pesach",

	{MonthSivan, 6}: "Shavuos",
	{MonthSivan, 7}: "Shavuos",
}

// cholHamoed covers the intermediate days of Pesach and Succos.
var cholHamoed = map[monthDay]string{
	{MonthNisan, 17}: "Chol Hamoed Pesach",
	{MonthNisan, 18}: "Chol Hamoed Pesach",
	{MonthNisan, 19}: "Chol Hamoed Pesach",
	{MonthNisan, 20}: "Chol Hamoed Pesach",

	{MonthTishrei, 17}: "Chol Hamoed Succos",
	{MonthTishrei, 18}: "Chol Hamoed Succos",
	{MonthTishrei, 19}: "Chol Hamoed Succos",
	{MonthTishrei, 20}: "Chol Hamoed Succos",
	{MonthTishrei, 21}: "Chol Hamoed Succos",
}
