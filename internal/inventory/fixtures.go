package inventory

import "github.com/run-bigpig/carpick/internal/models"

// Fixtures is a small built-in inventory used by the seed command and by
// tests. Prices in 만원, mileage in km.
func Fixtures() []models.VehicleItem {
	return []models.VehicleItem{
		{Manufacturer: "현대", Model: "아반떼 CN7", Year: 2021, Price: 1850, Mileage: 42000, Location: "서울", FuelType: "가솔린", Displacement: 1598, Color: "화이트", Platform: "encar", OriginalPrice: 2100},
		{Manufacturer: "현대", Model: "쏘나타 DN8", Year: 2020, Price: 2250, Mileage: 58000, Location: "경기", FuelType: "LPG", Displacement: 1999, Color: "그레이", Platform: "encar", OriginalPrice: 2600},
		{Manufacturer: "현대", Model: "그랜저 IG", Year: 2019, Price: 2480, Mileage: 71000, Location: "인천", FuelType: "가솔린", Displacement: 2497, Color: "블랙", Platform: "kcar", OriginalPrice: 3300},
		{Manufacturer: "현대", Model: "투싼 NX4", Year: 2021, Price: 2650, Mileage: 39000, Location: "서울", FuelType: "디젤", Displacement: 1995, Color: "화이트", Platform: "encar", OriginalPrice: 3000},
		{Manufacturer: "현대", Model: "캐스퍼", Year: 2022, Price: 1380, Mileage: 21000, Location: "대전", FuelType: "가솔린", Displacement: 998, Color: "카키", Platform: "encar", OriginalPrice: 1550},
		{Manufacturer: "기아", Model: "K5 DL3", Year: 2020, Price: 2150, Mileage: 49000, Location: "서울", FuelType: "가솔린", Displacement: 1999, Color: "블루", Platform: "kcar", OriginalPrice: 2500},
		{Manufacturer: "기아", Model: "쏘렌토 MQ4", Year: 2021, Price: 3250, Mileage: 45000, Location: "경기", FuelType: "하이브리드", Displacement: 1598, Color: "그레이", Platform: "encar", OriginalPrice: 3800},
		{Manufacturer: "기아", Model: "셀토스", Year: 2021, Price: 1950, Mileage: 33000, Location: "부산", FuelType: "가솔린", Displacement: 1598, Color: "레드", Platform: "encar", OriginalPrice: 2200},
		{Manufacturer: "기아", Model: "니로 하이브리드", Year: 2020, Price: 1980, Mileage: 52000, Location: "서울", FuelType: "하이브리드", Displacement: 1580, Color: "화이트", Platform: "kcar", OriginalPrice: 2400},
		{Manufacturer: "기아", Model: "레이", Year: 2021, Price: 1150, Mileage: 28000, Location: "광주", FuelType: "가솔린", Displacement: 998, Color: "화이트", Platform: "encar", OriginalPrice: 1350},
		{Manufacturer: "기아", Model: "카니발 KA4", Year: 2021, Price: 3450, Mileage: 55000, Location: "경기", FuelType: "디젤", Displacement: 2199, Color: "블랙", Platform: "encar", OriginalPrice: 3900},
		{Manufacturer: "제네시스", Model: "G80 RG3", Year: 2021, Price: 4850, Mileage: 41000, Location: "서울", FuelType: "가솔린", Displacement: 2497, Color: "블랙", Platform: "encar", OriginalPrice: 5900},
		{Manufacturer: "제네시스", Model: "GV70", Year: 2021, Price: 4550, Mileage: 36000, Location: "서울", FuelType: "가솔린", Displacement: 2497, Color: "화이트", Platform: "kcar", OriginalPrice: 5300},
		{Manufacturer: "제네시스", Model: "GV80", Year: 2020, Price: 5450, Mileage: 62000, Location: "경기", FuelType: "디젤", Displacement: 2996, Color: "그레이", Platform: "encar", OriginalPrice: 6800},
		{Manufacturer: "벤츠", Model: "E클래스 W213", Year: 2019, Price: 4250, Mileage: 68000, Location: "서울", FuelType: "가솔린", Displacement: 1991, Color: "블랙", Platform: "encar", OriginalPrice: 6500},
		{Manufacturer: "BMW", Model: "5시리즈 G30", Year: 2019, Price: 3950, Mileage: 72000, Location: "경기", FuelType: "디젤", Displacement: 1995, Color: "블랙", Platform: "kcar", OriginalPrice: 6300},
		{Manufacturer: "BMW", Model: "X3 G01", Year: 2020, Price: 4150, Mileage: 58000, Location: "서울", FuelType: "디젤", Displacement: 1995, Color: "화이트", Platform: "encar", OriginalPrice: 6100},
		{Manufacturer: "아우디", Model: "A6 C8", Year: 2020, Price: 3850, Mileage: 61000, Location: "인천", FuelType: "가솔린", Displacement: 1984, Color: "그레이", Platform: "encar", OriginalPrice: 6200},
		{Manufacturer: "렉서스", Model: "ES300h", Year: 2019, Price: 3650, Mileage: 66000, Location: "서울", FuelType: "하이브리드", Displacement: 2487, Color: "화이트", Platform: "kcar", OriginalPrice: 5700},
		{Manufacturer: "쉐보레", Model: "트레일블레이저", Year: 2021, Price: 1890, Mileage: 37000, Location: "대구", FuelType: "가솔린", Displacement: 1341, Color: "블루", Platform: "encar", OriginalPrice: 2300},
		{Manufacturer: "르노코리아", Model: "QM6", Year: 2020, Price: 1750, Mileage: 64000, Location: "부산", FuelType: "LPG", Displacement: 1998, Color: "그레이", Platform: "encar", OriginalPrice: 2400},
		{Manufacturer: "르노코리아", Model: "XM3", Year: 2021, Price: 1680, Mileage: 31000, Location: "서울", FuelType: "가솔린", Displacement: 1598, Color: "오렌지", Platform: "kcar", OriginalPrice: 1950},
		{Manufacturer: "도요타", Model: "RAV4 하이브리드", Year: 2020, Price: 3150, Mileage: 54000, Location: "서울", FuelType: "하이브리드", Displacement: 2487, Color: "화이트", Platform: "encar", OriginalPrice: 4200},
		{Manufacturer: "폭스바겐", Model: "티구안", Year: 2019, Price: 2750, Mileage: 69000, Location: "경기", FuelType: "디젤", Displacement: 1968, Color: "블랙", Platform: "encar", OriginalPrice: 4000},
	}
}
