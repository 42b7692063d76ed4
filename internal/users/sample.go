package users

import "time"

// SampleUsers returns the demo directory shown until the user API exists.
func SampleUsers() []User {
	return []User{
		{ID: 1, Name: "Adaeze Okafor", Email: "adaeze.okafor@gmail.com", Phone: "08031234567", BVN: "22145678901", Joined: day(2024, time.June, 28)},
		{ID: 2, Name: "Babatunde Adeyemi", Email: "tunde.adeyemi@yahoo.com", Phone: "08029876543", BVN: "", Joined: day(2024, time.June, 25)},
		{ID: 3, Name: "Chinedu Eze", Email: "chinedu.eze@outlook.com", Phone: "07065432109", BVN: "22198765432", Joined: day(2024, time.June, 21)},
		{ID: 4, Name: "Damilola Ogunleye", Email: "dami.ogunleye@gmail.com", Phone: "09012345678", BVN: "22134567890", Joined: day(2024, time.June, 17)},
		{ID: 5, Name: "Emeka Nwosu", Email: "emeka.nwosu@gmail.com", Phone: "08135792468", BVN: "", Joined: day(2024, time.June, 12)},
		{ID: 6, Name: "Funmilayo Bello", Email: "funmi.bello@gmail.com", Phone: "08024681357", BVN: "22111223344", Joined: day(2024, time.June, 5)},
		{ID: 7, Name: "Garba Musa", Email: "garba.musa@yahoo.com", Phone: "07033445566", BVN: "22155667788", Joined: day(2024, time.May, 30)},
		{ID: 8, Name: "Halima Abubakar", Email: "halima.abubakar@gmail.com", Phone: "08167788990", BVN: "", Joined: day(2024, time.May, 26)},
		{ID: 9, Name: "Ifeanyi Obi", Email: "ifeanyi.obi@gmail.com", Phone: "09098765432", BVN: "22199887766", Joined: day(2024, time.May, 19)},
		{ID: 10, Name: "Jumoke Afolabi", Email: "jumoke.afolabi@outlook.com", Phone: "08055544433", BVN: "22144332211", Joined: day(2024, time.May, 14)},
		{ID: 11, Name: "Kelechi Umeh", Email: "kelechi.umeh@gmail.com", Phone: "07012398745", BVN: "", Joined: day(2024, time.May, 8)},
		{ID: 12, Name: "Lateef Balogun", Email: "lateef.balogun@yahoo.com", Phone: "08143216547", BVN: "22166554433", Joined: day(2024, time.April, 29)},
		{ID: 13, Name: "Maryam Sani", Email: "maryam.sani@gmail.com", Phone: "08087654321", BVN: "22177889900", Joined: day(2024, time.April, 22)},
		{ID: 14, Name: "Nkechi Ibe", Email: "nkechi.ibe@gmail.com", Phone: "09033221100", BVN: "", Joined: day(2024, time.April, 15)},
		{ID: 15, Name: "Olumide Coker", Email: "olumide.coker@outlook.com", Phone: "08011122233", BVN: "22100998877", Joined: day(2024, time.April, 9)},
		{ID: 16, Name: "Patience Etim", Email: "patience.etim@gmail.com", Phone: "07099988877", BVN: "22188776655", Joined: day(2024, time.March, 31)},
		{ID: 17, Name: "Rasheed Lawal", Email: "rasheed.lawal@yahoo.com", Phone: "08122233344", BVN: "", Joined: day(2024, time.March, 24)},
		{ID: 18, Name: "Sade Olatunji", Email: "sade.olatunji@gmail.com", Phone: "08066677788", BVN: "22133445566", Joined: day(2024, time.March, 16)},
		{ID: 19, Name: "Tobi Akinola", Email: "tobi.akinola@gmail.com", Phone: "09055566677", BVN: "22122334455", Joined: day(2024, time.March, 8)},
		{ID: 20, Name: "Uche Chukwu", Email: "uche.chukwu@outlook.com", Phone: "08044455566", BVN: "", Joined: day(2024, time.February, 27)},
		{ID: 21, Name: "Victoria Essien", Email: "victoria.essien@gmail.com", Phone: "07077766655", BVN: "22111998877", Joined: day(2024, time.February, 18)},
		{ID: 22, Name: "Yusuf Danjuma", Email: "yusuf.danjuma@yahoo.com", Phone: "08199900011", BVN: "22155443322", Joined: day(2024, time.February, 9)},
		{ID: 23, Name: "Zainab Aliyu", Email: "zainab.aliyu@gmail.com", Phone: "08033300044", BVN: "", Joined: day(2024, time.January, 30)},
	}
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 9, 0, 0, 0, time.UTC)
}
