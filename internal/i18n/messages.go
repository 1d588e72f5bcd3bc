package i18n

// urdu maps English interface strings to their Urdu translation. English is
// served from the keys themselves.
var urdu = map[string]string{
	"Admission Portal":          "داخلہ پورٹل",
	"Dashboard":                 "ڈیش بورڈ",
	"Branches":                  "شاخیں",
	"Vans":                      "وینز",
	"Admin users":               "منتظمین",
	"Sign in":                   "سائن ان",
	"Sign out":                  "سائن آؤٹ",
	"Signed out":                "آپ سائن آؤٹ ہو گئے",
	"Welcome back":              "خوش آمدید",
	"Email":                     "ای میل",
	"Password":                  "پاس ورڈ",
	"Invalid email or password": "ای میل یا پاس ورڈ درست نہیں",
	"Search":                    "تلاش",
	"Name":                      "نام",
	"Code":                      "کوڈ",
	"City":                      "شہر",
	"Branch":                    "شاخ",
	"Driver":                    "ڈرائیور",
	"Plate number":              "نمبر پلیٹ",
	"Capacity":                  "گنجائش",
	"Role":                      "کردار",
	"Status":                    "حیثیت",
	"Active":                    "فعال",
	"Inactive":                  "غیر فعال",
	"Include inactive":          "غیر فعال بھی دکھائیں",
	"Reset filters":             "فلٹر صاف کریں",
	"Apply":                     "لاگو کریں",
	"Rows per page":             "فی صفحہ قطاریں",
	"Previous":                  "پچھلا",
	"Next":                      "اگلا",
	"Showing %d-%d of %d":       "%[3]d میں سے %[1]d تا %[2]d",
	"No records found.":         "کوئی ریکارڈ نہیں ملا۔",

	"Language":                                     "زبان",
	"Enter a valid email address.":                 "درست ای میل درج کریں۔",
	"Password is required.":                        "پاس ورڈ درکار ہے۔",
	"The requested record was not found.":          "مطلوبہ ریکارڈ نہیں ملا۔",
	"Some filters are invalid.":                    "کچھ فلٹر درست نہیں ہیں۔",
	"You are not allowed to view this page.":       "آپ کو یہ صفحہ دیکھنے کی اجازت نہیں۔",
	"The request took too long. Please try again.": "درخواست میں بہت وقت لگا۔ دوبارہ کوشش کریں۔",
	"Something went wrong while loading data.":     "ڈیٹا لوڈ کرتے ہوئے کچھ غلط ہو گیا۔",
}
