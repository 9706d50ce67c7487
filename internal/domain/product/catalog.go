// internal/domain/product/catalog.go
package product

import "github.com/shopspring/decimal"

// DefaultCatalog returns the launch catalog of The Gaming Palace
func DefaultCatalog() []Product {
	return []Product{
		seed("Spider-Man 2 - PS5", "The latest Spider-Man adventure with dual protagonists", "45.00", "69.99", "games", "https://images.unsplash.com/photo-1606144042614-b2417e99c4e3?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300", "5.0", 1247, true),
		seed("God of War Ragnarök - PS5", "Epic Norse mythology adventure continues", "42.00", "64.99", "games", "https://images.unsplash.com/photo-1551698618-1dfe5d97d256?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300", "5.0", 892, false),
		seed("Horizon Forbidden West - PS5", "Post-apocalyptic open world adventure", "38.00", "59.99", "games", "https://images.unsplash.com/photo-1542751371-adc38448a05e?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300", "4.8", 734, false),
		seed("Call of Duty: Modern Warfare III - PS5", "Latest COD with enhanced graphics and multiplayer", "49.00", "74.99", "games", "https://images.unsplash.com/photo-1552820728-8b83bb6b773f?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300", "4.6", 567, true),
		seed("Gran Turismo 7 - PS5", "Ultimate racing simulation experience", "35.00", "54.99", "games", "https://images.unsplash.com/photo-1449824913935-59a10b8d2000?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300", "4.7", 423, false),
		seed("The Last of Us Part II - PS4", "Post-apocalyptic survival masterpiece", "25.00", "39.99", "games", "https://images.unsplash.com/photo-1493711662062-fa541adb3fc8?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300", "4.9", 892, false),
		seed("Ghost of Tsushima Director's Cut - PS4", "Samurai adventure in feudal Japan", "32.00", "49.99", "games", "https://images.unsplash.com/photo-1578662996442-48f60103fc96?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300", "4.8", 634, false),
		seed("Bloodborne Game of the Year - PS4", "Gothic horror action RPG", "22.00", "34.99", "games", "https://images.unsplash.com/photo-1550745165-9bc0b252726f?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300", "4.7", 445, false),
		seed("Persona 4 Golden - PS Vita", "JRPG masterpiece with social simulation", "18.00", "29.99", "games", "https://images.unsplash.com/photo-1560472354-b33ff0c44a43?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300", "4.9", 312, false),
		seed("Uncharted: Golden Abyss - PS Vita", "Portable adventure with Nathan Drake", "15.00", "24.99", "games", "https://images.unsplash.com/photo-1511512578047-dfb367046420?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300", "4.5", 198, false),
		seed("PlayStation 5 DualSense Controller", "Wireless controller with haptic feedback", "45.00", "69.99", "game-accessories", "https://images.unsplash.com/photo-1607853202273-797f1c22a38e?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300", "4.8", 567, false),
		seed("SteelSeries Gaming Headset", "7.1 surround sound gaming headset", "85.00", "129.99", "game-accessories", "https://images.unsplash.com/photo-1593305841991-05c297ba4575?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300", "4.6", 423, false),
		seed("Razer Gaming Mouse Pad XL", "Extra large RGB gaming mouse pad", "28.00", "42.99", "game-accessories", "https://images.unsplash.com/photo-1527864550417-7fd91fc51a46?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300", "4.4", 234, false),
		seed("Royal Gaming PC - RTX 4080", "Intel i9, RTX 4080, 32GB RAM, 2TB NVMe SSD", "2599.00", "3999.00", "pcs", "https://pixabay.com/get/gd9c02d26b4e527e72c84a07501724dde95a061ccb83d7096926fd60020431ecee408a5e9245619bc3f6e956d2ddc3105a9d471c0d32989d590bdd3bcaa6f60dc_1280.jpg", "5.0", 156, true),
		seed("Alienware Aurora R15", "RTX 4070, Intel i7-13700KF, 16GB RAM, 1TB SSD", "1899.00", "2899.00", "pcs", "https://images.unsplash.com/photo-1587202372775-e229f172b9d7?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300", "4.8", 234, false),
		seed("ASUS ROG Strix Gaming PC", "RTX 4060 Ti, AMD Ryzen 7, 16GB RAM, 1TB NVMe", "1299.00", "1999.00", "pcs", "https://images.unsplash.com/photo-1625842268584-8f3296236761?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300", "4.7", 189, false),
		seed("Origin PC Gaming Beast", "RTX 4090, Intel i9-13900K, 64GB RAM, 4TB SSD", "4299.00", "6599.00", "pcs", "https://images.unsplash.com/photo-1540829917886-91ab031b1764?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300", "5.0", 67, false),
		seed("MacBook Pro 16\" M3 Pro", "M3 Pro chip, 18GB RAM, 512GB SSD, Space Black", "1999.00", "2499.00", "laptops", "https://images.unsplash.com/photo-1496181133206-80ce9b88a853?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300", "4.9", 423, true),
		seed("MacBook Air 15\" M3", "M3 chip, 16GB RAM, 512GB SSD, Midnight", "1399.00", "1699.00", "laptops", "https://images.unsplash.com/photo-1541807084-5c52b6b3adef?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300", "4.8", 567, false),
		seed("MacBook Pro 14\" M3 Max", "M3 Max chip, 36GB RAM, 1TB SSD, Silver", "3199.00", "3999.00", "laptops", "https://images.unsplash.com/photo-1517336714731-489689fd1ca8?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300", "5.0", 189, false),
		seed("Alienware m18 R1", "RTX 4090, Intel i9-13980HX, 32GB RAM, 1TB SSD", "3499.00", "4999.00", "laptops", "https://images.unsplash.com/photo-1603302576837-37561b2e2302?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300", "4.8", 134, false),
		seed("Alienware x17 R2", "RTX 4080, Intel i7-13700HX, 16GB RAM, 512GB SSD", "2299.00", "3499.00", "laptops", "https://images.unsplash.com/photo-1525373612132-b3e820b57ba8?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300", "4.7", 98, false),
		seed("Alienware m16 R1", "RTX 4070, AMD Ryzen 9, 16GB RAM, 1TB SSD", "1899.00", "2799.00", "laptops", "https://images.unsplash.com/photo-1588872657578-7efd1f1555ed?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300", "4.6", 156, false),
		seed("PlayStation 5 Console + Controller", "Latest PS5 with additional DualSense controller", "649.00", "999.00", "electronics", "https://images.unsplash.com/photo-1607853202273-797f1c22a38e?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300", "5.0", 392, true),
		seed("27\" 4K Gaming Monitor", "144Hz refresh rate, G-Sync compatible, HDR support", "549.00", "845.00", "electronics", "https://images.unsplash.com/photo-1587831990711-23ca6441447b?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300", "4.5", 74, false),
		seed("Meta Quest 3 VR Headset", "Latest VR technology with hand tracking and 4K display", "429.00", "660.00", "electronics", "https://pixabay.com/get/g64c988f65c080a5492029b2d9d6de774ea82e34d3035737acdfae16d6465687d1857864fda4a97f4f5c303f728d9417bbfed8f1bfe82aec851d6baf9f385ada5_1280.jpg", "4.5", 267, false),
		seed("4K Entertainment Center", "Complete home theater with 65\" 4K display and surround sound", "1899.00", "2920.00", "entertainment", "https://pixabay.com/get/g7ce0bff3f26a0a16ee45f0b328ce6c31da410b51d999c9baf37901f8da4041cbafd3c45e56b4f8d9f11524a069fa6f0b51ef227e144d871811b897e4d53401ad_1280.jpg", "5.0", 203, false),
		seed("Royal Gaming Throne Chair", "Ergonomic design with premium leather and RGB lighting", "799.00", "1229.00", "entertainment", "https://images.unsplash.com/photo-1541558869434-2840d308329a?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300", "5.0", 145, false),
	}
}

func seed(name, description, price, originalPrice, category, imageURL, rating string, reviewCount int, isHot bool) Product {
	original := decimal.RequireFromString(originalPrice)
	r := decimal.RequireFromString(rating)
	count := reviewCount

	return Product{
		Name:          name,
		Description:   description,
		Price:         decimal.RequireFromString(price),
		OriginalPrice: &original,
		Category:      category,
		ImageURL:      imageURL,
		Rating:        &r,
		ReviewCount:   &count,
		InStock:       true,
		IsHot:         isHot,
	}
}
