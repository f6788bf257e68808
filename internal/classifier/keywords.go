package classifier

// defaultKeywords is the built-in acceptance set: English and Hindi legal
// vocabulary plus the broad certificate/government terms needed for issued
// documents like income certificates.
var defaultKeywords = []string{
	"agreement", "contract", "affidavit", "plaintiff", "defendant", "court",
	"judge", "jurisdiction", "whereas", "heretofore", "indemnify", "liability",
	"lease", "terms and conditions", "governed by the laws of", "article",
	"section", "clause", "party", "parties", "provision", "income certificate",
	"annual income", "gross income", "net income", "financial year", "assessment year",
	"revenue department", "tahsildar", "magistrate", "issuing authority", "verified",
	"certified that", "salary", "rupees", "pension", "seal", "stamp", "समझौता",
	"अनुबंध", "शपथ पत्र", "वादी", " प्रतिवादी", "न्यायालय", "अदालत", "न्यायाधीश",
	"क्षेत्राधिकार", "जबकि", "क्षतिपूर्ति", "दायित्व", "पट्टा", "नियम और शर्तें",
	"कानूनों द्वारा शासित", "अनुच्छेद", "धारा", "खंड", "पक्षकार", "प्रावधान",
	"आय प्रमाण पत्र", "वार्षिक आय", "सकल आय", "शुद्ध आय", "वित्तीय वर्ष",
	"निर्धारण वर्ष", "राजस्व विभाग", "तहसीलदार", "मजिस्ट्रेट",
	"जारी करने वाला प्राधिकरण", "सत्यापित", "प्रमाणित", "वेतन", "रुपये",
	"पेंशन", "मुहर", "स्टाम्प",
	"certificate", "certificate number", "government", "ministry", "department",
	"report", "official", "verified by", "document", "authority",
	"प्रमाण पत्र", "संख्या", "सरकार", "मंत्रालय", "विभाग",
	"रिपोर्ट", "आधिकारिक", "दस्तावेज़", "प्राधिकरण",
}
